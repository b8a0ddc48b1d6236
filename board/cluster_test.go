package board_test

import (
	"testing"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClustersIgnoresSmallGroups(t *testing.T) {
	b := board.MustParse(
		"TT.OO.S.S.",
	)
	assert.Empty(t, b.Clusters())
}

func TestClustersSeparateFruits(t *testing.T) {
	b := board.MustParse(
		"TTTOOO....",
	)
	clusters := b.Clusters()
	require.Len(t, clusters, 2)
	assert.Equal(t, piece.T, clusters[0].Fruit)
	assert.Equal(t, piece.O, clusters[1].Fruit)
	assert.Equal(t, 3, clusters[0].Size())
	assert.Equal(t, []piece.Point{{X: 0, Y: 19}, {X: 1, Y: 19}, {X: 2, Y: 19}}, clusters[0].Cells)
}

func TestClusterPatterns(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want board.Pattern
	}{
		{
			name: "horizontal line",
			rows: []string{"JJJJJ....."},
			want: board.PatternLine,
		},
		{
			name: "vertical line",
			rows: []string{"L.........", "L.........", "L........."},
			want: board.PatternLine,
		},
		{
			// The middle of each long side has three neighbours.
			name: "two by three rectangle is a square with a cross",
			rows: []string{"SSS.......", "SSS......."},
			want: board.PatternSquare | board.PatternCross,
		},
		{
			name: "plus shape",
			rows: []string{".Z........", "ZZZ.......", ".Z........"},
			want: board.PatternCross | board.PatternScattered,
		},
		{
			name: "tee with a tail",
			rows: []string{"IIII......", ".I........"},
			want: board.PatternCross,
		},
		{
			name: "staircase",
			rows: []string{"..OO......", ".OO.......", "OO........"},
			want: board.PatternScattered,
		},
		{
			name: "bent trio",
			rows: []string{"T.........", "TT........"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.MustParse(tt.rows...)
			clusters := b.Clusters()
			require.Len(t, clusters, 1)
			assert.Equal(t, tt.want, clusters[0].Patterns, "got %s", clusters[0].Patterns)
		})
	}
}

func TestLargeClusterIsSingleComponent(t *testing.T) {
	rows := make([]string, board.Height)
	for i := range rows {
		rows[i] = "IIIIIIIIII"
	}
	clusters := board.MustParse(rows...).Clusters()
	require.Len(t, clusters, 1)
	assert.Equal(t, board.Width*board.Height, clusters[0].Size())
	assert.True(t, clusters[0].Patterns.Has(board.PatternSquare))
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "none", board.Pattern(0).String())
	assert.Equal(t, "square+cross", (board.PatternSquare | board.PatternCross).String())
}
