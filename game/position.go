package game

import "fmt"

// Position addresses a cell by row and column, both zero based.
type Position struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Pos is a shorthand for Position{row, col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Neighbors returns the 8 surrounding positions. Callers filter them with In.
func (p Position) Neighbors() []Position {
	neighbors := make([]Position, 0, len(offsets))
	for _, o := range offsets {
		neighbors = append(neighbors, Position{Row: p.Row + o[0], Col: p.Col + o[1]})
	}

	return neighbors
}

// In reports whether p lies on a rows x cols grid.
func (p Position) In(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}
