package piece

// FrameSize is the edge length of the square frame every rotation state is
// drawn in.
const FrameSize = 4

// Shape is one rotation state of a tetromino inside its 4x4 frame, indexed
// [row][column].
type Shape [FrameSize][FrameSize]bool

// Cells returns the filled offsets of the shape relative to the frame's
// top-left corner, in row-major order.
func (s Shape) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y := range FrameSize {
		for x := range FrameSize {
			if s[y][x] {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Width returns the number of columns spanned by filled cells.
func (s Shape) Width() int {
	minX, maxX := FrameSize, -1
	for y := range FrameSize {
		for x := range FrameSize {
			if s[y][x] {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if maxX < 0 {
		return 0
	}
	return maxX - minX + 1
}

func shape(rows ...string) Shape {
	var s Shape
	for y, row := range rows {
		for x, c := range row {
			s[y][x] = c == '#'
		}
	}
	return s
}

var rotations = [...][]Shape{
	I: {
		shape("....", "####", "....", "...."),
		shape("..#.", "..#.", "..#.", "..#."),
		shape("....", "....", "####", "...."),
		shape(".#..", ".#..", ".#..", ".#.."),
	},
	O: {
		shape("....", ".##.", ".##.", "...."),
	},
	T: {
		shape("....", ".#..", "###.", "...."),
		shape("....", ".#..", ".##.", ".#.."),
		shape("....", "....", "###.", ".#.."),
		shape("....", ".#..", "##..", ".#.."),
	},
	S: {
		shape("....", ".##.", "##..", "...."),
		shape("....", ".#..", ".##.", "..#."),
		shape("....", "....", ".##.", "##.."),
		shape("....", "#...", "##..", ".#.."),
	},
	Z: {
		shape("....", "##..", ".##.", "...."),
		shape("....", "..#.", ".##.", ".#.."),
		shape("....", "....", "##..", ".##."),
		shape("....", ".#..", "##..", "#..."),
	},
	J: {
		shape("....", "#...", "###.", "...."),
		shape("....", ".##.", ".#..", ".#.."),
		shape("....", "....", "###.", "..#."),
		shape("....", ".#..", ".#..", "##.."),
	},
	L: {
		shape("....", "..#.", "###.", "...."),
		shape("....", ".#..", ".#..", ".##."),
		shape("....", "....", "###.", "#..."),
		shape("....", "##..", ".#..", ".#.."),
	},
}

// RotationCount returns how many distinct rotation states the kind has: one
// for O, four for the rest.
func RotationCount(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(rotations[k])
}

// ShapeOf returns the shape of kind k in the given rotation state. The
// rotation is reduced modulo the kind's rotation count.
func ShapeOf(k Kind, rotation int) Shape {
	states := rotations[k]
	n := len(states)
	return states[((rotation%n)+n)%n]
}

var (
	standardKicks = []Point{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {-1, -1}, {1, -1}}
	longKicks     = []Point{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}
)

// KickOffsets returns the ordered offsets tried when rotating kind k from one
// state to another. The I piece uses its own wider table; the transition
// itself does not change the list.
func KickOffsets(k Kind, from, to int) []Point {
	if k == I {
		return longKicks
	}
	return standardKicks
}
