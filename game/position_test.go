package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Neighbors(t *testing.T) {
	neighbors := Pos(1, 1).Neighbors()

	assert.Len(t, neighbors, 8)
	assert.NotContains(t, neighbors, Pos(1, 1))
	assert.ElementsMatch(t, []Position{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, neighbors)
}

func TestPosition_In(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{name: "origin", pos: Pos(0, 0), want: true},
		{name: "last cell", pos: Pos(8, 8), want: true},
		{name: "negative row", pos: Pos(-1, 0), want: false},
		{name: "negative column", pos: Pos(0, -1), want: false},
		{name: "row overflow", pos: Pos(9, 0), want: false},
		{name: "column overflow", pos: Pos(0, 9), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.In(9, 9))
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(3, 7)", Pos(3, 7).String())
}
