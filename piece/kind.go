// Package piece defines the seven fruit tetrominoes, their rotation tables and
// wall-kick data, and the bag randomizer that deals them.
package piece

// Kind identifies one of the seven tetromino shapes. The zero value None marks
// an empty board cell.
type Kind uint8

const (
	None Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every playable kind in canonical order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

type fruit struct {
	letter string
	name   string
	symbol string
	value  int
}

var fruits = [...]fruit{
	None: {letter: ".", name: "none", symbol: " "},
	I:    {letter: "I", name: "banana", symbol: "🍌", value: 100},
	O:    {letter: "O", name: "orange", symbol: "🍊", value: 50},
	T:    {letter: "T", name: "apple", symbol: "🍎", value: 75},
	S:    {letter: "S", name: "strawberry", symbol: "🍓", value: 60},
	Z:    {letter: "Z", name: "kiwi", symbol: "🥝", value: 60},
	J:    {letter: "J", name: "grapes", symbol: "🍇", value: 70},
	L:    {letter: "L", name: "pineapple", symbol: "🍍", value: 70},
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= L
}

func (k Kind) String() string {
	if int(k) >= len(fruits) {
		return "?"
	}
	return fruits[k].letter
}

// Fruit returns the fruit name the kind is themed after.
func (k Kind) Fruit() string {
	if int(k) >= len(fruits) {
		return ""
	}
	return fruits[k].name
}

// Symbol returns the emoji drawn for cells of this kind.
func (k Kind) Symbol() string {
	if int(k) >= len(fruits) {
		return ""
	}
	return fruits[k].symbol
}

// Value is the per-cell base worth of this fruit in a combo cluster.
func (k Kind) Value() int {
	if !k.Valid() {
		return 50
	}
	return fruits[k].value
}

// ParseKind converts a single-letter name such as "T" back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if fruits[k].letter == s {
			return k, true
		}
	}
	return None, false
}
