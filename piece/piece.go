package piece

// Point is a column/row pair. Rows grow downwards.
type Point struct {
	X, Y int
}

// Fitter answers whether a shape placed with its frame at (x, y) fits. Piece
// only needs this read-only query from the board.
type Fitter interface {
	IsValidPosition(x, y int, s Shape) bool
}

// Piece is a live tetromino: a kind, a rotation state and the board position
// of its frame's top-left corner. Y may be negative while spawning.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// SpawnX returns the column a piece frame spawns at on a board of the given
// width.
func SpawnX(boardWidth int) int {
	return (boardWidth - FrameSize) / 2
}

// Spawn creates a piece of kind k at the spawn position of a board of the
// given width.
func Spawn(k Kind, boardWidth int) *Piece {
	return &Piece{Kind: k, X: SpawnX(boardWidth)}
}

// Shape returns the current rotation state's shape.
func (p *Piece) Shape() Shape {
	return ShapeOf(p.Kind, p.Rotation)
}

// Position returns the frame's top-left corner.
func (p *Piece) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// Cells returns the board coordinates of the four occupied cells.
func (p *Piece) Cells() []Point {
	cells := p.Shape().Cells()
	for i := range cells {
		cells[i].X += p.X
		cells[i].Y += p.Y
	}
	return cells
}

func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

// Rotate advances (clockwise) or retreats the rotation index modulo the
// kind's rotation count. It does not consult the board.
func (p *Piece) Rotate(clockwise bool) (prev, next int) {
	n := RotationCount(p.Kind)
	prev = p.Rotation
	if clockwise {
		p.Rotation = (p.Rotation + 1) % n
	} else {
		p.Rotation = (p.Rotation - 1 + n) % n
	}
	return prev, p.Rotation
}

func (p *Piece) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Reset puts the piece back at the spawn position in rotation state 0.
func (p *Piece) Reset(boardWidth int) {
	p.X = SpawnX(boardWidth)
	p.Y = 0
	p.Rotation = 0
}

// KickOffsets returns the wall-kick candidates for rotating this piece.
func (p *Piece) KickOffsets(from, to int) []Point {
	return KickOffsets(p.Kind, from, to)
}

// GroundedShadow returns where the piece would come to rest if dropped
// straight down from its current position: the ghost position.
func (p *Piece) GroundedShadow(f Fitter) Point {
	ghost := p.Clone()
	s := ghost.Shape()
	for f.IsValidPosition(ghost.X, ghost.Y+1, s) {
		ghost.Y++
	}
	return ghost.Position()
}
