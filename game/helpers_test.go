package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// layout builds a board with mines at fixed positions.
func layout(t *testing.T, rows, cols int, mines ...Position) *Board {
	t.Helper()

	d := Difficulty{Name: "test", Rows: rows, Columns: cols, Mines: len(mines)}
	require.NoError(t, d.Validate())

	b := NewBoard(d, seeded(1))
	for _, m := range mines {
		b.at(m).Mine = true
	}

	b.countAdjacent()
	b.minesPlaced = true
	return b
}

func newTestGame(t *testing.T, clk *clock, rows, cols int, mines ...Position) *Game {
	t.Helper()

	b := layout(t, rows, cols, mines...)
	g, err := New("game", "player", b.difficulty, WithClock(clk.Now))
	require.NoError(t, err)

	g.board = b
	return g
}

func countMines(b *Board) int {
	mines := 0
	b.Each(func(c Cell) {
		if c.Mine {
			mines++
		}
	})

	return mines
}

func requireAdjacency(t *testing.T, b *Board) {
	t.Helper()

	b.Each(func(c Cell) {
		if c.Mine {
			return
		}

		expected := 0
		for _, n := range c.Position.Neighbors() {
			if cell, ok := b.Cell(n); ok && cell.Mine {
				expected++
			}
		}

		require.Equal(t, expected, c.Adjacent, "adjacent mines of %v", c.Position)
	})
}
