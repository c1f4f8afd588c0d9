package game

// Visibility is what a player currently sees on a cell.
type Visibility int

const (
	Hidden Visibility = iota
	Revealed
	Flagged
	Questioned
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	}

	return "unknown"
}

func (v Visibility) valid() bool {
	return v >= Hidden && v <= Questioned
}

// Cell is a single square of the board. Adjacent is only meaningful once
// mines are placed and is never shown for a mined cell.
type Cell struct {
	Position   Position
	Visibility Visibility
	Mine       bool
	Adjacent   int
}

// Hidden cells plus flagged and questioned ones are still covered.
func (c *Cell) Covered() bool {
	return c.Visibility != Revealed
}

// reveal uncovers the cell. It reports false when the cell was already
// revealed.
func (c *Cell) reveal() (bool, error) {
	switch c.Visibility {
	case Revealed:
		return false, nil
	case Flagged, Questioned:
		return false, illegalOperation("reveal", "cell %v is %v, clear it first", c.Position, c.Visibility)
	}

	c.Visibility = Revealed
	return true, nil
}

// toggleFlag cycles Hidden -> Flagged -> Hidden. A questioned cell becomes flagged.
func (c *Cell) toggleFlag() error {
	switch c.Visibility {
	case Revealed:
		return illegalOperation("flag", "cell %v is already revealed", c.Position)
	case Flagged:
		c.Visibility = Hidden
	default:
		c.Visibility = Flagged
	}

	return nil
}

// toggleQuestion cycles Hidden -> Questioned -> Hidden. A flagged cell becomes questioned.
func (c *Cell) toggleQuestion() error {
	switch c.Visibility {
	case Revealed:
		return illegalOperation("question", "cell %v is already revealed", c.Position)
	case Questioned:
		c.Visibility = Hidden
	default:
		c.Visibility = Questioned
	}

	return nil
}
