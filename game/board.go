package game

// Rand is the source of randomness used to place mines. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// Board owns the grid of cells. Mines are placed lazily on the first reveal so
// that the first click is always safe.
type Board struct {
	difficulty  Difficulty
	cells       [][]Cell
	minesPlaced bool
	revealed    int
	flagged     int
	rand        Rand
}

// NewBoard allocates an all-hidden board without mines.
func NewBoard(d Difficulty, r Rand) *Board {
	cells := make([][]Cell, d.Rows)
	for row := range cells {
		cells[row] = make([]Cell, d.Columns)
		for col := range cells[row] {
			cells[row][col].Position = Pos(row, col)
		}
	}

	return &Board{
		difficulty: d,
		cells:      cells,
		rand:       r,
	}
}

func (b *Board) Rows() int              { return b.difficulty.Rows }
func (b *Board) Cols() int              { return b.difficulty.Columns }
func (b *Board) Difficulty() Difficulty { return b.difficulty }
func (b *Board) MinesPlaced() bool      { return b.minesPlaced }

// Revealed is the number of safe cells uncovered so far.
func (b *Board) Revealed() int { return b.revealed }

// Flagged is the number of cells currently flagged.
func (b *Board) Flagged() int { return b.flagged }

// Cell returns a copy of the cell at p.
func (b *Board) Cell(p Position) (Cell, bool) {
	if !b.contains(p) {
		return Cell{}, false
	}

	return b.cells[p.Row][p.Col], true
}

// Each calls fn for every cell in row-major order.
func (b *Board) Each(fn func(Cell)) {
	for _, row := range b.cells {
		for _, cell := range row {
			fn(cell)
		}
	}
}

func (b *Board) contains(p Position) bool {
	return p.In(b.difficulty.Rows, b.difficulty.Columns)
}

func (b *Board) at(p Position) *Cell {
	return &b.cells[p.Row][p.Col]
}

func (b *Board) neighbors(p Position) []Position {
	neighbors := p.Neighbors()
	valid := neighbors[:0]
	for _, n := range neighbors {
		if b.contains(n) {
			valid = append(valid, n)
		}
	}

	return valid
}

// PlaceMines puts the configured number of mines anywhere but excluded and
// computes adjacency counts. Calling it again does nothing.
func (b *Board) PlaceMines(excluded Position) {
	if b.minesPlaced {
		return
	}

	candidates := make([]Position, 0, b.difficulty.Cells())
	for row := 0; row < b.difficulty.Rows; row++ {
		for col := 0; col < b.difficulty.Columns; col++ {
			if p := Pos(row, col); p != excluded {
				candidates = append(candidates, p)
			}
		}
	}

	// Partial Fisher-Yates: the first Mines slots end up a uniform sample.
	for i := 0; i < b.difficulty.Mines && i < len(candidates); i++ {
		j := i + b.rand.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		b.at(candidates[i]).Mine = true
	}

	b.countAdjacent()
	b.minesPlaced = true
}

func (b *Board) countAdjacent() {
	for row := range b.cells {
		for col := range b.cells[row] {
			cell := &b.cells[row][col]
			if cell.Mine {
				continue
			}

			cell.Adjacent = b.adjacentMines(cell.Position)
		}
	}
}

func (b *Board) adjacentMines(p Position) int {
	count := 0
	for _, n := range b.neighbors(p) {
		if b.at(n).Mine {
			count++
		}
	}

	return count
}

// Reveal uncovers the cell at p and, when it has no adjacent mines, the whole
// connected empty region around it along with its numbered border. Flagged and
// questioned cells are never touched by the cascade. It returns every position
// that became revealed; an already revealed target yields nothing.
func (b *Board) Reveal(p Position) ([]Position, error) {
	if !b.contains(p) {
		return nil, invalidInput("reveal", "position %v is outside a %dx%d board", p, b.Rows(), b.Cols())
	}

	cell := b.at(p)
	changed, err := cell.reveal()
	if err != nil || !changed {
		return nil, err
	}

	revealed := []Position{p}
	if cell.Mine {
		return revealed, nil
	}

	b.revealed++
	if cell.Adjacent != 0 {
		return revealed, nil
	}

	visited := map[Position]struct{}{p: {}}
	queue := []Position{p}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range b.neighbors(current) {
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}

			neighbor := b.at(n)
			if neighbor.Visibility != Hidden || neighbor.Mine {
				continue
			}

			neighbor.Visibility = Revealed
			b.revealed++
			revealed = append(revealed, n)

			if neighbor.Adjacent == 0 {
				queue = append(queue, n)
			}
		}
	}

	return revealed, nil
}

// Chord reveals every hidden neighbour of a revealed numbered cell once the
// number of flags around it matches its count. A mismatch is a no-op.
func (b *Board) Chord(p Position) ([]Position, error) {
	if !b.contains(p) {
		return nil, invalidInput("chord", "position %v is outside a %dx%d board", p, b.Rows(), b.Cols())
	}

	cell := b.at(p)
	if cell.Visibility != Revealed {
		return nil, illegalOperation("chord", "cell %v isn't revealed", p)
	}

	if cell.Mine || cell.Adjacent == 0 {
		return nil, nil
	}

	var (
		neighbors = b.neighbors(p)
		flags     int
	)

	for _, n := range neighbors {
		if b.at(n).Visibility == Flagged {
			flags++
		}
	}

	if flags != cell.Adjacent {
		return nil, nil
	}

	revealed := make([]Position, 0)
	for _, n := range neighbors {
		if b.at(n).Visibility != Hidden {
			continue
		}

		positions, err := b.Reveal(n)
		if err != nil {
			return revealed, err
		}

		revealed = append(revealed, positions...)
	}

	return revealed, nil
}

// ToggleFlag flags a covered cell or clears its flag.
func (b *Board) ToggleFlag(p Position) (Visibility, error) {
	if !b.contains(p) {
		return Hidden, invalidInput("flag", "position %v is outside a %dx%d board", p, b.Rows(), b.Cols())
	}

	cell := b.at(p)
	before := cell.Visibility
	if err := cell.toggleFlag(); err != nil {
		return before, err
	}

	b.trackFlag(before, cell.Visibility)
	return cell.Visibility, nil
}

// ToggleQuestion marks a covered cell with a question mark or clears it.
func (b *Board) ToggleQuestion(p Position) (Visibility, error) {
	if !b.contains(p) {
		return Hidden, invalidInput("question", "position %v is outside a %dx%d board", p, b.Rows(), b.Cols())
	}

	cell := b.at(p)
	before := cell.Visibility
	if err := cell.toggleQuestion(); err != nil {
		return before, err
	}

	b.trackFlag(before, cell.Visibility)
	return cell.Visibility, nil
}

func (b *Board) trackFlag(before, after Visibility) {
	if before == Flagged {
		b.flagged--
	}

	if after == Flagged {
		b.flagged++
	}
}

// Won reports whether every safe cell has been revealed. Mines may stay
// covered in any state.
func (b *Board) Won() bool {
	return b.minesPlaced && b.revealed == b.difficulty.SafeCells()
}

// RevealMines uncovers every mine for display after a loss. Counters are left
// untouched.
func (b *Board) RevealMines() []Position {
	mines := make([]Position, 0, b.difficulty.Mines)
	for row := range b.cells {
		for col := range b.cells[row] {
			cell := &b.cells[row][col]
			if cell.Mine && cell.Visibility != Revealed {
				cell.Visibility = Revealed
				mines = append(mines, cell.Position)
			}
		}
	}

	return mines
}
