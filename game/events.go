package game

import "time"

// EventKind names a fact raised by a game operation.
type EventKind string

const (
	EventStarted    EventKind = "started"
	EventRevealed   EventKind = "revealed"
	EventFlagged    EventKind = "flagged"
	EventQuestioned EventKind = "questioned"
	EventWon        EventKind = "won"
	EventLost       EventKind = "lost"
	EventPaused     EventKind = "paused"
	EventResumed    EventKind = "resumed"
)

// EventKinds lists every kind a game can raise.
func EventKinds() []EventKind {
	return []EventKind{
		EventStarted, EventRevealed, EventFlagged, EventQuestioned,
		EventWon, EventLost, EventPaused, EventResumed,
	}
}

// Event is a plain record of something that happened to a game. The game
// never delivers events anywhere; every mutating call returns the ones it
// raised.
type Event interface {
	Kind() EventKind
	GameID() string
	OccurredAt() time.Time
}

type header struct {
	ID string
	At time.Time
}

func (h header) GameID() string        { return h.ID }
func (h header) OccurredAt() time.Time { return h.At }

// Started is raised by the first reveal.
type Started struct {
	header
	Difficulty Difficulty
}

// CellsRevealed lists every cell uncovered by one reveal, cascade included.
type CellsRevealed struct {
	header
	Origin    Position
	Positions []Position
}

// CellFlagged is raised whenever the flag toggle changes a cell.
type CellFlagged struct {
	header
	Position   Position
	Visibility Visibility
}

// CellQuestioned is raised whenever the question toggle changes a cell.
type CellQuestioned struct {
	header
	Position   Position
	Visibility Visibility
}

// GameWon is raised when the last safe cell is revealed.
type GameWon struct {
	header
	Elapsed   time.Duration
	FlagsUsed int
}

// GameLost carries the mine that ended the game.
type GameLost struct {
	header
	Position Position
	Elapsed  time.Duration
}

// GamePaused is raised when the clock stops.
type GamePaused struct {
	header
}

// GameResumed carries how long the game was paused.
type GameResumed struct {
	header
	PausedFor time.Duration
}

func (Started) Kind() EventKind        { return EventStarted }
func (CellsRevealed) Kind() EventKind  { return EventRevealed }
func (CellFlagged) Kind() EventKind    { return EventFlagged }
func (CellQuestioned) Kind() EventKind { return EventQuestioned }
func (GameWon) Kind() EventKind        { return EventWon }
func (GameLost) Kind() EventKind       { return EventLost }
func (GamePaused) Kind() EventKind     { return EventPaused }
func (GameResumed) Kind() EventKind    { return EventResumed }
