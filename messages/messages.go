package messages

import (
	"fmt"
	"time"

	"github.com/VTGare/minesweeper/game"
)

func FormatDuration(d time.Duration) string {
	return d.Round(1 * time.Second).String()
}

func Statistics(s game.Statistics) string {
	return fmt.Sprintf(
		"Status: %v • Time: %v • Moves: %v • Mines left: %v • Progress: %.0f%%",
		s.Status, FormatDuration(s.Elapsed), s.Moves, s.RemainingMines, s.Progress,
	)
}

func Event(e game.Event) string {
	switch e := e.(type) {
	case game.Started:
		return fmt.Sprintf("Game started on %v.", Difficulty(e.Difficulty))
	case game.CellsRevealed:
		if len(e.Positions) == 1 {
			return fmt.Sprintf("Revealed %v.", e.Origin)
		}

		return fmt.Sprintf("Revealed %v cells from %v.", len(e.Positions), e.Origin)
	case game.CellFlagged:
		if e.Visibility == game.Flagged {
			return fmt.Sprintf("Flagged %v.", e.Position)
		}

		return fmt.Sprintf("Removed a flag from %v.", e.Position)
	case game.CellQuestioned:
		if e.Visibility == game.Questioned {
			return fmt.Sprintf("Marked %v with a question.", e.Position)
		}

		return fmt.Sprintf("Removed a question from %v.", e.Position)
	case game.GameWon:
		return fmt.Sprintf("You won in %v using %v flags!", FormatDuration(e.Elapsed), e.FlagsUsed)
	case game.GameLost:
		return fmt.Sprintf("Boom! You hit a mine at %v after %v.", e.Position, FormatDuration(e.Elapsed))
	case game.GamePaused:
		return "Game paused."
	case game.GameResumed:
		return fmt.Sprintf("Game resumed after %v.", FormatDuration(e.PausedFor))
	}

	return string(e.Kind())
}

func Difficulty(d game.Difficulty) string {
	name := d.Name
	if name == "" {
		name = "custom"
	}

	return fmt.Sprintf("%v (%vx%v, %v mines)", name, d.Rows, d.Columns, d.Mines)
}
