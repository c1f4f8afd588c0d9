package game

import "strings"

// Difficulty is a board configuration. It is never mutated once a game holds it.
type Difficulty struct {
	Name    string `json:"name" bson:"name"`
	Rows    int    `json:"rows" bson:"rows"`
	Columns int    `json:"columns" bson:"columns"`
	Mines   int    `json:"mines" bson:"mines"`
}

// Presets.
var (
	Beginner     = Difficulty{Name: "beginner", Rows: 9, Columns: 9, Mines: 10}
	Intermediate = Difficulty{Name: "intermediate", Rows: 16, Columns: 16, Mines: 40}
	Expert       = Difficulty{Name: "expert", Rows: 16, Columns: 30, Mines: 99}
)

// Presets returns every named difficulty from the easiest.
func Presets() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Expert}
}

// NewDifficulty returns a custom difficulty. At least one cell besides the
// first click must stay free of mines.
func NewDifficulty(name string, rows, cols, mines int) (Difficulty, error) {
	d := Difficulty{Name: name, Rows: rows, Columns: cols, Mines: mines}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}

	return d, nil
}

// DifficultyByName looks a preset up, ignoring case.
func DifficultyByName(name string) (Difficulty, bool) {
	for _, d := range Presets() {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}

	return Difficulty{}, false
}

func (d Difficulty) Validate() error {
	if d.Rows <= 0 || d.Columns <= 0 {
		return invalidInput("difficulty", "board must have positive dimensions, got %dx%d", d.Rows, d.Columns)
	}

	if d.Mines < 0 {
		return invalidInput("difficulty", "mine count can't be negative, got %d", d.Mines)
	}

	if d.Mines >= d.Cells()-1 {
		return invalidInput("difficulty", "%d mines don't fit on a %dx%d board", d.Mines, d.Rows, d.Columns)
	}

	return nil
}

// Cells is the total number of cells on the board.
func (d Difficulty) Cells() int {
	return d.Rows * d.Columns
}

// SafeCells is the number of cells without a mine.
func (d Difficulty) SafeCells() int {
	return d.Cells() - d.Mines
}
