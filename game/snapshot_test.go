package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedGame(t *testing.T, clk *clock) *Game {
	t.Helper()

	g, err := New("game", "player", Beginner, WithRand(seeded(7)), WithClock(clk.Now))
	require.NoError(t, err)

	_, err = g.Reveal(Pos(0, 0))
	require.NoError(t, err)

	var hidden []Position
	g.Board().Each(func(c Cell) {
		if c.Visibility == Hidden {
			hidden = append(hidden, c.Position)
		}
	})
	require.GreaterOrEqual(t, len(hidden), 2)

	_, err = g.ToggleFlag(hidden[0])
	require.NoError(t, err)
	_, err = g.ToggleQuestion(hidden[1])
	require.NoError(t, err)

	clk.Advance(30 * time.Second)
	_, err = g.Pause()
	require.NoError(t, err)

	return g
}

func TestSnapshot_RoundTrip(t *testing.T) {
	clk := newClock()
	g := playedGame(t, clk)

	snapshot := g.Snapshot()
	assert.Equal(t, "paused", snapshot.Status)
	assert.Len(t, snapshot.Cells, 81)
	assert.True(t, snapshot.MinesPlaced)
	assert.Equal(t, 1, snapshot.Flagged)

	restored, err := Restore(snapshot, WithClock(clk.Now))
	require.NoError(t, err)

	assert.Equal(t, snapshot, restored.Snapshot())
	assert.Equal(t, g.Statistics(), restored.Statistics())

	clk.Advance(time.Minute)
	_, err = restored.Resume()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, restored.Elapsed())
}

func TestSnapshot_JSON(t *testing.T) {
	clk := newClock()
	snapshot := playedGame(t, clk).Snapshot()

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := Restore(&decoded, WithClock(clk.Now))
	require.NoError(t, err)
	assert.Equal(t, Paused, restored.Status())
	assert.Equal(t, snapshot.Cells, restored.Snapshot().Cells)
}

func TestSnapshot_LostGameWithFlaggedMine(t *testing.T) {
	g := newTestGame(t, newClock(), 3, 3, Pos(0, 0), Pos(2, 2))

	_, err := g.ToggleFlag(Pos(0, 0))
	require.NoError(t, err)
	_, err = g.Reveal(Pos(2, 2))
	require.NoError(t, err)
	require.Equal(t, Lost, g.Status())

	restored, err := Restore(g.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Board().Flagged())
}

func TestRestore_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{name: "missing id", mutate: func(s *Snapshot) { s.ID = "" }},
		{name: "truncated cells", mutate: func(s *Snapshot) { s.Cells = s.Cells[:80] }},
		{name: "wrong dimensions", mutate: func(s *Snapshot) { s.Difficulty.Rows = 10 }},
		{name: "invalid difficulty", mutate: func(s *Snapshot) { s.Difficulty.Mines = 81 }},
		{name: "unknown status", mutate: func(s *Snapshot) { s.Status = "abandoned" }},
		{name: "revealed counter", mutate: func(s *Snapshot) { s.Revealed++ }},
		{name: "flagged counter", mutate: func(s *Snapshot) { s.Flagged = 5 }},
		{name: "extra mine", mutate: func(s *Snapshot) {
			for i := range s.Cells {
				if !s.Cells[i].Mine && s.Cells[i].Visibility == Hidden {
					s.Cells[i].Mine = true
					return
				}
			}
		}},
		{name: "adjacency out of range", mutate: func(s *Snapshot) { s.Cells[0].Adjacent = 9 }},
		{name: "unknown visibility", mutate: func(s *Snapshot) { s.Cells[0].Visibility = 7 }},
		{name: "paused without time", mutate: func(s *Snapshot) { s.PausedAt = nil }},
		{name: "started without mines", mutate: func(s *Snapshot) {
			s.MinesPlaced = false
		}},
		{name: "first move after start", mutate: func(s *Snapshot) { s.FirstMove = true }},
		{name: "won too early", mutate: func(s *Snapshot) {
			s.Status = Won.String()
			s.CompletedAt = s.PausedAt
		}},
		{name: "lost without a mine", mutate: func(s *Snapshot) {
			s.Status = Lost.String()
			s.CompletedAt = s.PausedAt
		}},
		{name: "completed while playing", mutate: func(s *Snapshot) { s.CompletedAt = s.PausedAt }},
		{name: "playing with a revealed mine", mutate: func(s *Snapshot) {
			s.Status = InProgress.String()
			s.PausedAt = nil
			for i := range s.Cells {
				if s.Cells[i].Mine && s.Cells[i].Visibility == Hidden {
					s.Cells[i].Visibility = Revealed
					return
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := playedGame(t, newClock()).Snapshot()
			tt.mutate(snapshot)

			_, err := Restore(snapshot)
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}

	_, err := Restore(nil)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestRestore_StatusAgainstBoard(t *testing.T) {
	clk := newClock()

	fresh, err := New("fresh", "player", Beginner)
	require.NoError(t, err)
	notStarted := fresh.Snapshot()
	notStarted.FirstMove = false

	_, err = Restore(notStarted)
	assert.ErrorIs(t, err, ErrCorruptSnapshot, "not started game past its first move")

	won := newTestGame(t, clk, 3, 3, Pos(0, 0))
	_, err = won.Reveal(Pos(2, 2))
	require.NoError(t, err)
	require.Equal(t, Won, won.Status())

	snapshot := won.Snapshot()
	_, err = Restore(snapshot)
	require.NoError(t, err)

	snapshot.CompletedAt = nil
	_, err = Restore(snapshot)
	assert.ErrorIs(t, err, ErrCorruptSnapshot, "won game without a completion time")

	lost := newTestGame(t, clk, 3, 3, Pos(0, 0), Pos(2, 2))
	_, err = lost.Reveal(Pos(2, 2))
	require.NoError(t, err)
	require.Equal(t, Lost, lost.Status())

	snapshot = lost.Snapshot()
	snapshot.CompletedAt = nil
	_, err = Restore(snapshot)
	assert.ErrorIs(t, err, ErrCorruptSnapshot, "lost game without a completion time")
}
