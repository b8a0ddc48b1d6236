package piece_test

import (
	"fmt"

	"github.com/plus3/fruitris/piece"
)

func ExampleSequence() {
	src := piece.NewSequence(piece.T, piece.I, piece.O)

	fmt.Println("upcoming:", src.Peek(4))
	for range 3 {
		k := src.Next()
		fmt.Println(k, k.Fruit(), k.Symbol())
	}

	// Output:
	// upcoming: [T I O T]
	// T apple 🍎
	// I banana 🍌
	// O orange 🍊
}

func ExamplePiece_Rotate() {
	p := piece.Spawn(piece.T, 10)
	prev, next := p.Rotate(true)
	fmt.Println(prev, "->", next, p.Cells())

	// Output:
	// 0 -> 1 [{4 1} {4 2} {5 2} {4 3}]
}
