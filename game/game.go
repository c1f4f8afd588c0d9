package game

import (
	"math/rand"
	"time"
)

// Status is the lifecycle stage of a game. Won and Lost are terminal; Paused
// only ever returns to InProgress.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Won
	Lost
	Paused
)

var statusNames = map[Status]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	Won:        "won",
	Lost:       "lost",
	Paused:     "paused",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "unknown"
}

// Over reports whether the status is terminal.
func (s Status) Over() bool {
	return s == Won || s == Lost
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(name string) (Status, bool) {
	for status, n := range statusNames {
		if n == name {
			return status, true
		}
	}

	return 0, false
}

type options struct {
	rand Rand
	now  func() time.Time
}

// Option configures a game at construction or restoration.
type Option func(*options)

// WithRand sets the source used to place mines.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) *options {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(o.now().UnixNano()))
	}

	return o
}

// Game is a single minesweeper session. It is not safe for concurrent use;
// callers serialise access per game.
type Game struct {
	id         string
	playerID   string
	difficulty Difficulty
	status     Status
	board      *Board

	startedAt   time.Time
	completedAt time.Time
	pausedAt    time.Time

	moves     int
	firstMove bool

	now func() time.Time
}

// New creates a game whose board has no mines yet.
func New(id, playerID string, d Difficulty, opts ...Option) (*Game, error) {
	if id == "" {
		return nil, invalidInput("new", "game id is required")
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &Game{
		id:         id,
		playerID:   playerID,
		difficulty: d,
		status:     NotStarted,
		board:      NewBoard(d, o.rand),
		firstMove:  true,
		now:        o.now,
	}, nil
}

func (g *Game) ID() string             { return g.id }
func (g *Game) PlayerID() string       { return g.playerID }
func (g *Game) Difficulty() Difficulty { return g.difficulty }
func (g *Game) Status() Status         { return g.status }
func (g *Game) Moves() int             { return g.moves }
func (g *Game) FirstMove() bool        { return g.firstMove }

// Board exposes the grid for reading. Mutating it directly bypasses the
// game's bookkeeping.
func (g *Game) Board() *Board { return g.board }

func (g *Game) StartedAt() time.Time   { return g.startedAt }
func (g *Game) CompletedAt() time.Time { return g.completedAt }
func (g *Game) PausedAt() time.Time    { return g.pausedAt }

func (g *Game) header() header {
	return header{ID: g.id, At: g.now()}
}

// Reveal uncovers a cell. The first reveal places the mines around it and
// starts the clock.
func (g *Game) Reveal(p Position) ([]Event, error) {
	switch {
	case g.status.Over():
		return nil, illegalOperation("reveal", "game is already %v", g.status)
	case g.status == Paused:
		return nil, illegalOperation("reveal", "game is paused, resume it first")
	}

	cell, ok := g.board.Cell(p)
	if !ok {
		return nil, invalidInput("reveal", "position %v is outside a %dx%d board", p, g.board.Rows(), g.board.Cols())
	}

	if cell.Visibility == Flagged || cell.Visibility == Questioned {
		return nil, illegalOperation("reveal", "cell %v is %v, clear it first", p, cell.Visibility)
	}

	var events []Event
	if g.status == NotStarted {
		g.board.PlaceMines(p)
		g.startedAt = g.now()
		g.status = InProgress
		g.firstMove = false
		events = append(events, Started{header: g.header(), Difficulty: g.difficulty})
	}

	revealed, err := g.board.Reveal(p)
	if err != nil {
		return events, err
	}

	return append(events, g.settle(p, revealed)...), nil
}

// Chord reveals the unflagged neighbours of a numbered cell whose flags are
// all placed.
func (g *Game) Chord(p Position) ([]Event, error) {
	if g.status != InProgress {
		return nil, illegalOperation("chord", "game is %v", g.status)
	}

	revealed, err := g.board.Chord(p)
	if err != nil {
		return nil, err
	}

	return g.settle(p, revealed), nil
}

// settle counts the move and ends the game if the revealed cells decide it.
func (g *Game) settle(origin Position, revealed []Position) []Event {
	if len(revealed) == 0 {
		return nil
	}

	g.moves++
	events := []Event{CellsRevealed{header: g.header(), Origin: origin, Positions: revealed}}

	for _, p := range revealed {
		if cell, _ := g.board.Cell(p); cell.Mine {
			return append(events, g.lose(p))
		}
	}

	if g.board.Won() {
		events = append(events, g.win())
	}

	return events
}

func (g *Game) lose(p Position) Event {
	g.status = Lost
	g.completedAt = g.now()
	g.board.RevealMines()

	return GameLost{header: g.header(), Position: p, Elapsed: g.Elapsed()}
}

func (g *Game) win() Event {
	g.status = Won
	g.completedAt = g.now()

	return GameWon{header: g.header(), Elapsed: g.Elapsed(), FlagsUsed: g.board.Flagged()}
}

// ToggleFlag flags a covered cell or removes its flag.
func (g *Game) ToggleFlag(p Position) ([]Event, error) {
	if g.status.Over() {
		return nil, illegalOperation("flag", "game is already %v", g.status)
	}

	visibility, err := g.board.ToggleFlag(p)
	if err != nil {
		return nil, err
	}

	return []Event{CellFlagged{header: g.header(), Position: p, Visibility: visibility}}, nil
}

// ToggleQuestion puts a question mark on a covered cell or removes it.
func (g *Game) ToggleQuestion(p Position) ([]Event, error) {
	if g.status != InProgress {
		return nil, illegalOperation("question", "game is %v", g.status)
	}

	visibility, err := g.board.ToggleQuestion(p)
	if err != nil {
		return nil, err
	}

	return []Event{CellQuestioned{header: g.header(), Position: p, Visibility: visibility}}, nil
}

// Pause stops the clock. Reveals are refused until the game is resumed.
func (g *Game) Pause() ([]Event, error) {
	if g.status != InProgress {
		return nil, illegalOperation("pause", "game is %v", g.status)
	}

	g.status = Paused
	g.pausedAt = g.now()

	return []Event{GamePaused{header: g.header()}}, nil
}

// Resume continues a paused game. The clock is shifted so that the paused
// interval doesn't count towards the elapsed time.
func (g *Game) Resume() ([]Event, error) {
	if g.status != Paused {
		return nil, illegalOperation("resume", "game is %v", g.status)
	}

	pausedFor := g.now().Sub(g.pausedAt)
	g.startedAt = g.startedAt.Add(pausedFor)
	g.pausedAt = time.Time{}
	g.status = InProgress

	return []Event{GameResumed{header: g.header(), PausedFor: pausedFor}}, nil
}

// Elapsed is the time spent playing, pauses excluded.
func (g *Game) Elapsed() time.Duration {
	if g.status == NotStarted {
		return 0
	}

	end := g.now()
	switch {
	case !g.completedAt.IsZero():
		end = g.completedAt
	case !g.pausedAt.IsZero():
		end = g.pausedAt
	}

	return end.Sub(g.startedAt)
}

// RemainingMines is the mine count minus placed flags, never negative.
func (g *Game) RemainingMines() int {
	return max(0, g.difficulty.Mines-g.board.Flagged())
}

// Progress is the percentage of safe cells revealed.
func (g *Game) Progress() float64 {
	if !g.board.MinesPlaced() {
		return 0
	}

	safe := g.difficulty.SafeCells()
	if safe == 0 {
		return 100
	}

	return float64(g.board.Revealed()) / float64(safe) * 100
}

// Statistics summarises a game for display.
type Statistics struct {
	Status         Status        `json:"status"`
	Elapsed        time.Duration `json:"elapsed"`
	Moves          int           `json:"moves"`
	Flags          int           `json:"flags"`
	RemainingMines int           `json:"remaining_mines"`
	Revealed       int           `json:"revealed"`
	SafeCells      int           `json:"safe_cells"`
	Progress       float64       `json:"progress"`
}

// Statistics reports the game as of now.
func (g *Game) Statistics() Statistics {
	return Statistics{
		Status:         g.status,
		Elapsed:        g.Elapsed(),
		Moves:          g.moves,
		Flags:          g.board.Flagged(),
		RemainingMines: g.RemainingMines(),
		Revealed:       g.board.Revealed(),
		SafeCells:      g.difficulty.SafeCells(),
		Progress:       g.Progress(),
	}
}
