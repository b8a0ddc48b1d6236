// Package board models the fixed playing field: cell storage, collision tests,
// line scans, row removal and same-fruit cluster detection.
package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/fruitris/piece"
)

const (
	Width  = 10
	Height = 20
)

// ErrBadFixture is returned by Parse for malformed layouts.
var ErrBadFixture = errors.New("board: bad fixture")

// Cell is one square of the field. The zero value is empty.
type Cell struct {
	Fruit piece.Kind
}

func (c Cell) Empty() bool {
	return c.Fruit == piece.None
}

// Symbol returns the emoji drawn for the cell, or a blank for empty cells.
func (c Cell) Symbol() string {
	return c.Fruit.Symbol()
}

// Grid is the raw cell matrix, row 0 at the top.
type Grid [Height][Width]Cell

// Board exclusively owns the grid. Other packages query it through
// IsValidPosition and At; only the lock pipeline mutates it.
type Board struct {
	cells Grid
}

func New() *Board {
	return &Board{}
}

// Parse builds a board from text rows aligned to the bottom of the field.
// Each row holds Width characters: a piece letter or '.' for empty.
func Parse(rows ...string) (*Board, error) {
	if len(rows) > Height {
		return nil, fmt.Errorf("%w: %d rows", ErrBadFixture, len(rows))
	}
	b := New()
	top := Height - len(rows)
	for i, row := range rows {
		if len(row) != Width {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrBadFixture, i, len(row))
		}
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			k, ok := piece.ParseKind(string(ch))
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q", ErrBadFixture, ch)
			}
			b.cells[top+i][x] = Cell{Fruit: k}
		}
	}
	return b, nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(rows ...string) *Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range Height {
		for x := range Width {
			sb.WriteString(b.cells[y][x].Fruit.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Grid returns a copy of the cell matrix.
func (b *Board) Grid() Grid {
	return b.cells
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at (x, y). Out-of-range coordinates read as empty.
func (b *Board) At(x, y int) Cell {
	if !inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

// Set writes a single cell. Out-of-range writes are ignored.
func (b *Board) Set(x, y int, k piece.Kind) {
	if inBounds(x, y) {
		b.cells[y][x] = Cell{Fruit: k}
	}
}

// Occupied reports whether (x, y) is blocked. Anything outside the field,
// including rows above the ceiling, counts as blocked.
func (b *Board) Occupied(x, y int) bool {
	if !inBounds(x, y) {
		return true
	}
	return !b.cells[y][x].Empty()
}

// IsValidPosition reports whether shape s fits with its frame at (x, y).
// Cells above the ceiling are only checked against the side walls.
func (b *Board) IsValidPosition(x, y int, s piece.Shape) bool {
	for _, c := range s.Cells() {
		bx, by := x+c.X, y+c.Y
		if bx < 0 || bx >= Width || by >= Height {
			return false
		}
		if by >= 0 && !b.cells[by][bx].Empty() {
			return false
		}
	}
	return true
}

// Lock writes the piece's cells into the grid and returns the cells that were
// written. Cells above the visible field are dropped.
func (b *Board) Lock(p *piece.Piece) []piece.Point {
	placed := make([]piece.Point, 0, 4)
	for _, c := range p.Cells() {
		if !inBounds(c.X, c.Y) {
			continue
		}
		b.cells[c.Y][c.X] = Cell{Fruit: p.Kind}
		placed = append(placed, c)
	}
	return placed
}

func (b *Board) rowFull(y int) bool {
	for x := range Width {
		if b.cells[y][x].Empty() {
			return false
		}
	}
	return true
}

// CompletedLines returns the indices of full rows in ascending order.
func (b *Board) CompletedLines() []int {
	var rows []int
	for y := range Height {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveRows deletes the given rows and lets everything above fall into the
// gap, inserting empty rows at the top. Unknown or duplicate indices are
// ignored.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	var drop [Height]bool
	for _, y := range rows {
		if y >= 0 && y < Height {
			drop[y] = true
		}
	}

	var next Grid
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if drop[y] {
			continue
		}
		next[dst] = b.cells[y]
		dst--
	}
	b.cells = next
}

// IsPerfectClear reports whether every cell outside the ignored rows is
// empty.
func (b *Board) IsPerfectClear(ignoring []int) bool {
	for y := range Height {
		if slices.Contains(ignoring, y) {
			continue
		}
		for x := range Width {
			if !b.cells[y][x].Empty() {
				return false
			}
		}
	}
	return true
}

// CornersOccupied counts how many of the four corners of the 3x3 frame
// anchored at (x, y) are blocked.
func (b *Board) CornersOccupied(x, y int) int {
	n := 0
	for _, c := range [...]piece.Point{{X: x, Y: y}, {X: x + 2, Y: y}, {X: x, Y: y + 2}, {X: x + 2, Y: y + 2}} {
		if b.Occupied(c.X, c.Y) {
			n++
		}
	}
	return n
}

// Wipe empties every cell.
func (b *Board) Wipe() {
	b.cells = Grid{}
}

// Filled returns how many cells are occupied.
func (b *Board) Filled() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if !b.cells[y][x].Empty() {
				n++
			}
		}
	}
	return n
}
