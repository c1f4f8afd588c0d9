package game

import "time"

// Snapshot is the flat form of a game used by storage. Cells are stored row by
// row.
type Snapshot struct {
	ID          string      `json:"id" bson:"game_id"`
	PlayerID    string      `json:"player_id" bson:"player_id"`
	Difficulty  Difficulty  `json:"difficulty" bson:"difficulty"`
	Status      string      `json:"status" bson:"status"`
	StartedAt   *time.Time  `json:"started_at,omitempty" bson:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	PausedAt    *time.Time  `json:"paused_at,omitempty" bson:"paused_at,omitempty"`
	Moves       int         `json:"moves" bson:"moves"`
	FirstMove   bool        `json:"first_move" bson:"first_move"`
	MinesPlaced bool        `json:"mines_placed" bson:"mines_placed"`
	Revealed    int         `json:"revealed" bson:"revealed"`
	Flagged     int         `json:"flagged" bson:"flagged"`
	Cells       []CellState `json:"cells" bson:"cells"`

	// Version is maintained by stores for optimistic concurrency.
	Version   int64     `json:"version" bson:"version"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CellState is a single cell of a snapshot.
type CellState struct {
	Visibility Visibility `json:"v" bson:"v"`
	Mine       bool       `json:"m,omitempty" bson:"m,omitempty"`
	Adjacent   int        `json:"a,omitempty" bson:"a,omitempty"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}

// Snapshot exports the game's full state.
func (g *Game) Snapshot() *Snapshot {
	cells := make([]CellState, 0, g.difficulty.Cells())
	g.board.Each(func(c Cell) {
		cells = append(cells, CellState{Visibility: c.Visibility, Mine: c.Mine, Adjacent: c.Adjacent})
	})

	return &Snapshot{
		ID:          g.id,
		PlayerID:    g.playerID,
		Difficulty:  g.difficulty,
		Status:      g.status.String(),
		StartedAt:   timePtr(g.startedAt),
		CompletedAt: timePtr(g.completedAt),
		PausedAt:    timePtr(g.pausedAt),
		Moves:       g.moves,
		FirstMove:   g.firstMove,
		MinesPlaced: g.board.minesPlaced,
		Revealed:    g.board.revealed,
		Flagged:     g.board.flagged,
		Cells:       cells,
	}
}

// Restore rebuilds a game from a snapshot. Any inconsistency is reported as
// ErrCorruptSnapshot; it means the stored data is broken, not that a player
// did something wrong.
func Restore(s *Snapshot, opts ...Option) (*Game, error) {
	if s == nil {
		return nil, corruptSnapshot("snapshot is nil")
	}

	if s.ID == "" {
		return nil, corruptSnapshot("game id is empty")
	}

	d := s.Difficulty
	if err := d.Validate(); err != nil {
		return nil, corruptSnapshot("game %v: %v", s.ID, err)
	}

	if len(s.Cells) != d.Cells() {
		return nil, corruptSnapshot("game %v: %d cells for a %dx%d board", s.ID, len(s.Cells), d.Rows, d.Columns)
	}

	status, ok := ParseStatus(s.Status)
	if !ok {
		return nil, corruptSnapshot("game %v: unknown status %q", s.ID, s.Status)
	}

	o := newOptions(opts)
	board := NewBoard(d, o.rand)
	board.minesPlaced = s.MinesPlaced

	var mines, revealed, flagged, detonated int
	for i, state := range s.Cells {
		if !state.Visibility.valid() {
			return nil, corruptSnapshot("game %v: cell %d has visibility %d", s.ID, i, state.Visibility)
		}

		if state.Adjacent < 0 || state.Adjacent > 8 {
			return nil, corruptSnapshot("game %v: cell %d has %d adjacent mines", s.ID, i, state.Adjacent)
		}

		cell := &board.cells[i/d.Columns][i%d.Columns]
		cell.Visibility = state.Visibility
		cell.Mine = state.Mine
		cell.Adjacent = state.Adjacent

		switch {
		case state.Mine:
			mines++
			if state.Visibility == Revealed {
				detonated++
			}
		case state.Visibility == Revealed:
			revealed++
		}

		if state.Visibility == Flagged {
			flagged++
		}
	}

	switch {
	case s.MinesPlaced && mines != d.Mines:
		return nil, corruptSnapshot("game %v: %d mines on the board, expected %d", s.ID, mines, d.Mines)
	case !s.MinesPlaced && (mines != 0 || revealed != 0):
		return nil, corruptSnapshot("game %v: board is played but mines aren't placed", s.ID)
	case revealed != s.Revealed:
		return nil, corruptSnapshot("game %v: %d revealed cells, counter says %d", s.ID, revealed, s.Revealed)
	case status != Lost && flagged != s.Flagged:
		return nil, corruptSnapshot("game %v: %d flagged cells, counter says %d", s.ID, flagged, s.Flagged)
	case status == Lost && (s.Flagged < flagged || s.Flagged > flagged+mines):
		// Revealing mines after a loss uncovers flagged mines but keeps the counter.
		return nil, corruptSnapshot("game %v: %d flagged cells, counter says %d", s.ID, flagged, s.Flagged)
	case status != NotStarted && (!s.MinesPlaced || s.StartedAt == nil):
		return nil, corruptSnapshot("game %v: %v game was never started", s.ID, status)
	case status == Paused && s.PausedAt == nil:
		return nil, corruptSnapshot("game %v: paused game has no pause time", s.ID)
	case s.FirstMove != (status == NotStarted):
		return nil, corruptSnapshot("game %v: first move flag is %v for a %v game", s.ID, s.FirstMove, status)
	}

	// The status must agree with what the board shows.
	switch status {
	case Won:
		if revealed != d.SafeCells() || s.CompletedAt == nil {
			return nil, corruptSnapshot("game %v: won with %d of %d safe cells revealed", s.ID, revealed, d.SafeCells())
		}
	case Lost:
		if detonated == 0 || s.CompletedAt == nil {
			return nil, corruptSnapshot("game %v: lost without a revealed mine", s.ID)
		}
	default:
		if detonated != 0 || s.CompletedAt != nil {
			return nil, corruptSnapshot("game %v: %v game has a revealed mine or a completion time", s.ID, status)
		}
	}

	board.revealed = revealed
	board.flagged = s.Flagged

	return &Game{
		id:          s.ID,
		playerID:    s.PlayerID,
		difficulty:  d,
		status:      status,
		board:       board,
		startedAt:   timeOf(s.StartedAt),
		completedAt: timeOf(s.CompletedAt),
		pausedAt:    timeOf(s.PausedAt),
		moves:       s.Moves,
		firstMove:   s.FirstMove,
		now:         o.now,
	}, nil
}
