package board

import (
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/plus3/fruitris/piece"
)

// MinClusterSize is the smallest connected same-fruit group that counts as a
// combo.
const MinClusterSize = 3

// Pattern is a bit set of geometric classifications of a cluster. Patterns
// are independent; one cluster may match several.
type Pattern uint8

const (
	PatternLine Pattern = 1 << iota
	PatternSquare
	PatternCross
	PatternScattered
)

var patternNames = [...]struct {
	p    Pattern
	name string
}{
	{PatternLine, "line"},
	{PatternSquare, "square"},
	{PatternCross, "cross"},
	{PatternScattered, "scattered"},
}

func (p Pattern) Has(q Pattern) bool {
	return p&q != 0
}

func (p Pattern) String() string {
	var names []string
	for _, n := range patternNames {
		if p.Has(n.p) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Cluster is a maximal 4-connected group of cells holding the same fruit.
type Cluster struct {
	Fruit    piece.Kind
	Cells    []piece.Point
	Patterns Pattern
}

func (c Cluster) Size() int {
	return len(c.Cells)
}

func cellIndex(x, y int) int {
	return y*Width + x
}

// Clusters scans the grid row-major and returns every same-fruit component
// of at least MinClusterSize cells, classified by pattern. The fill uses an
// explicit stack so its depth is bounded by the field size.
func (b *Board) Clusters() []Cluster {
	var visited [Height][Width]bool
	var clusters []Cluster
	stack := make([]piece.Point, 0, Width*Height)

	for y := range Height {
		for x := range Width {
			if visited[y][x] || b.cells[y][x].Empty() {
				continue
			}
			fruit := b.cells[y][x].Fruit
			var cells []piece.Point

			stack = append(stack[:0], piece.Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !inBounds(p.X, p.Y) || visited[p.Y][p.X] || b.cells[p.Y][p.X].Fruit != fruit {
					continue
				}
				visited[p.Y][p.X] = true
				cells = append(cells, p)
				stack = append(stack,
					piece.Point{X: p.X + 1, Y: p.Y},
					piece.Point{X: p.X - 1, Y: p.Y},
					piece.Point{X: p.X, Y: p.Y + 1},
					piece.Point{X: p.X, Y: p.Y - 1},
				)
			}

			if len(cells) < MinClusterSize {
				continue
			}
			slices.SortFunc(cells, func(a, b piece.Point) int {
				return cellIndex(a.X, a.Y) - cellIndex(b.X, b.Y)
			})
			clusters = append(clusters, Cluster{
				Fruit:    fruit,
				Cells:    cells,
				Patterns: Classify(cells),
			})
		}
	}
	return clusters
}

// Classify returns every pattern the given cell group matches.
func Classify(cells []piece.Point) Pattern {
	var p Pattern
	if isLine(cells) {
		p |= PatternLine
	}
	if isSquare(cells) {
		p |= PatternSquare
	}
	if isCross(cells) {
		p |= PatternCross
	}
	if isScattered(cells) {
		p |= PatternScattered
	}
	return p
}

func isLine(cells []piece.Point) bool {
	if len(cells) < 3 {
		return false
	}
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		sameRow = sameRow && c.Y == cells[0].Y
		sameCol = sameCol && c.X == cells[0].X
	}
	return sameRow || sameCol
}

func bounds(cells []piece.Point) (minX, minY, maxX, maxY int) {
	minX, minY = cells[0].X, cells[0].Y
	maxX, maxY = minX, minY
	for _, c := range cells[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	return
}

func isSquare(cells []piece.Point) bool {
	if len(cells) < 4 {
		return false
	}
	minX, minY, maxX, maxY := bounds(cells)
	w, h := maxX-minX+1, maxY-minY+1
	return len(cells) == w*h && w >= 2 && h >= 2
}

func isCross(cells []piece.Point) bool {
	if len(cells) < 5 {
		return false
	}
	members := intmap.New[int, struct{}](len(cells))
	for _, c := range cells {
		members.Put(cellIndex(c.X, c.Y), struct{}{})
	}
	member := func(x, y int) bool {
		if !inBounds(x, y) {
			return false
		}
		_, ok := members.Get(cellIndex(x, y))
		return ok
	}
	for _, c := range cells {
		arms := 0
		for _, d := range [...]piece.Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}} {
			if member(c.X+d.X, c.Y+d.Y) {
				arms++
			}
		}
		if arms >= 3 {
			return true
		}
	}
	return false
}

func isScattered(cells []piece.Point) bool {
	if len(cells) < 5 {
		return false
	}
	rows := intmap.New[int, struct{}](Height)
	cols := intmap.New[int, struct{}](Width)
	for _, c := range cells {
		rows.Put(c.Y, struct{}{})
		cols.Put(c.X, struct{}{})
	}
	return rows.Len() >= 3 && cols.Len() >= 3
}
