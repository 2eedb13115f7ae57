package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Outcome int

const (
	Continue Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, v := range []Outcome{Continue, Win, Loss} {
		if string(text) == v.String() {
			*o = v
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Over reports whether the round has ended.
func (o Outcome) Over() bool {
	return o == Win || o == Loss
}

// NewRand returns a generator seeded from the runtime's random hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Minefield is the board of a single round. It is not safe for concurrent
// use; the owner serializes access.
type Minefield struct {
	params   Params
	cells    []Cell
	outcome  Outcome
	exploded int
	rnd      *rand.Rand
}

func New(params Params, r *rand.Rand) (*Minefield, error) {
	m := &Minefield{rnd: r, exploded: -1}
	if err := m.Reset(params); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset starts a new round with randomly placed mines. On error the
// current round is left as it was.
func (m *Minefield) Reset(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if m.rnd == nil {
		m.rnd = NewRand()
	}
	width, height, mineCount := params.Unpack()
	mask := placeMines(width, height, mineCount, params.Placement, m.rnd)
	m.install(params, mask)
	return nil
}

// ResetWithMines starts a new round with mines at exactly the given
// points. Duplicate points count once. The reveal mode of the previous
// round is kept.
func (m *Minefield) ResetWithMines(width, height int, mines ...Point) error {
	params := Params{
		Width:     width,
		Height:    height,
		Reveal:    m.params.Reveal,
		Placement: m.params.Placement,
	}
	if err := params.CheckSize(0); err != nil {
		return err
	}
	mask := make([]bool, width*height)
	for _, p := range mines {
		if !params.InBounds(p.Row, p.Col) {
			return &BoundsError{p.Row, p.Col, width, height}
		}
		i := p.Row*width + p.Col
		if !mask[i] {
			mask[i] = true
			params.MineCount++
		}
	}
	if err := params.Validate(); err != nil {
		return err
	}
	m.install(params, mask)
	return nil
}

func (m *Minefield) install(params Params, mask []bool) {
	cells := make([]Cell, len(mask))
	for i := range cells {
		cells[i] = Cell{Row: i / params.Width, Col: i % params.Width}
		if mask[i] {
			cells[i].Content = Mine
		}
	}
	m.params = params
	m.cells = cells
	m.outcome = Continue
	m.exploded = -1

	Log.WithFields(logrus.Fields{
		"params": params.String(),
		"reveal": params.Reveal.String(),
	}).Debug("new round")
}

func (m *Minefield) Params() Params   { return m.params }
func (m *Minefield) Width() int       { return m.params.Width }
func (m *Minefield) Height() int      { return m.params.Height }
func (m *Minefield) MineCount() int   { return m.params.MineCount }
func (m *Minefield) Outcome() Outcome { return m.outcome }

// Flags returns the number of flagged cells.
func (m *Minefield) Flags() (n int) {
	for _, c := range m.cells {
		if c.State == Flagged {
			n++
		}
	}
	return
}

func (m *Minefield) index(row, col int) (int, error) {
	if !m.params.InBounds(row, col) {
		return 0, &BoundsError{row, col, m.params.Width, m.params.Height}
	}
	return row*m.params.Width + col, nil
}

// neighbours appends the in-bounds Moore neighbourhood of cell i to buf
// in row-major order.
func (m *Minefield) neighbours(i int, buf []int) []int {
	w, h := m.params.Width, m.params.Height
	row, col := i/w, i%w
	for r := max(row-1, 0); r <= min(row+1, h-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, w-1); c++ {
			if r == row && c == col {
				continue
			}
			buf = append(buf, r*w+c)
		}
	}
	return buf
}

func (m *Minefield) adjacentMines(i int) (n int) {
	var buf [8]int
	for _, j := range m.neighbours(i, buf[:0]) {
		if m.cells[j].Content == Mine {
			n++
		}
	}
	return
}

func (m *Minefield) CellAt(row, col int) (Cell, error) {
	i, err := m.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return m.cells[i], nil
}

func (m *Minefield) AdjacentCells(row, col int) ([]Cell, error) {
	i, err := m.index(row, col)
	if err != nil {
		return nil, err
	}
	var buf [8]int
	idx := m.neighbours(i, buf[:0])
	cells := make([]Cell, len(idx))
	for k, j := range idx {
		cells[k] = m.cells[j]
	}
	return cells, nil
}

func (m *Minefield) AdjacentMineCount(row, col int) (int, error) {
	i, err := m.index(row, col)
	if err != nil {
		return 0, err
	}
	return m.adjacentMines(i), nil
}

// Reveal opens the cell at row, col. Flagged and already opened cells are
// left alone. Revealing a mine loses the round without opening the cell.
// The round is won once every safe cell is open; flagged cells, mines
// included, count as covered.
func (m *Minefield) Reveal(row, col int) (Outcome, error) {
	i, err := m.index(row, col)
	if err != nil {
		return m.outcome, err
	}
	if m.outcome.Over() || m.cells[i].State != Unopened {
		return m.outcome, nil
	}

	if m.cells[i].Content == Mine {
		m.outcome = Loss
		m.exploded = i
		Log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("mine revealed")
		return m.outcome, nil
	}

	if m.params.Reveal == RevealFloodFill {
		m.floodFill(i)
	} else {
		m.cells[i].State = Opened
	}

	/*
	 * The round is won once exactly as many cells are still covered
	 * as there are mines, i.e. every safe cell is open.
	 */
	covered := 0
	for _, c := range m.cells {
		if c.State != Opened {
			covered++
		}
	}
	if covered == m.params.MineCount {
		m.outcome = Win
		Log.WithField("params", m.params.String()).Debug("round won")
	}

	return m.outcome, nil
}

// floodFill opens cell i and, while the opened cell has no adjacent mines,
// every unopened neighbour. Flagged cells stop the fill.
func (m *Minefield) floodFill(i int) {
	var buf [8]int
	todo := []int{i}
	m.cells[i].State = Opened
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if m.adjacentMines(j) != 0 {
			continue
		}
		for _, k := range m.neighbours(j, buf[:0]) {
			if c := &m.cells[k]; c.State == Unopened && c.Content == Empty {
				c.State = Opened
				todo = append(todo, k)
			}
		}
	}
}

// ToggleFlag flips an unopened cell to flagged and back. It never ends
// the round.
func (m *Minefield) ToggleFlag(row, col int) (Outcome, error) {
	i, err := m.index(row, col)
	if err != nil {
		return m.outcome, err
	}
	if m.outcome.Over() {
		return m.outcome, nil
	}
	switch c := &m.cells[i]; c.State {
	case Unopened:
		c.State = Flagged
	case Flagged:
		c.State = Unopened
	}
	return m.outcome, nil
}

func (m *Minefield) glyph(i int) Glyph {
	c := m.cells[i]
	switch {
	case m.outcome == Loss && c.Content == Mine:
		if i == m.exploded {
			return ExplodedMine
		}
		if c.State == Flagged {
			return CorrectlyFlagged
		}
		return UnflaggedMine
	case m.outcome == Loss && c.State == Flagged:
		return FalselyFlagged
	case m.outcome == Win && c.Content == Mine:
		return CorrectlyFlagged
	}
	switch c.State {
	case Opened:
		return Glyph(m.adjacentMines(i))
	case Flagged:
		return Flag
	default:
		return Unknown
	}
}

// View returns what the player may know about one cell: mine positions
// stay hidden until the round is over.
func (m *Minefield) View(row, col int) (CellView, error) {
	i, err := m.index(row, col)
	if err != nil {
		return CellView{}, err
	}
	v := CellView{
		Row:   row,
		Col:   col,
		State: m.cells[i].State,
		Glyph: m.glyph(i),
	}
	if v.State == Opened {
		n := m.adjacentMines(i)
		v.AdjacentMines = &n
	}
	return v, nil
}

func (m *Minefield) PlayerGrid() Grid {
	g := make(Grid, len(m.cells))
	for i := range g {
		g[i] = m.glyph(i)
	}
	return g
}
