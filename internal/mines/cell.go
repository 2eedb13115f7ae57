package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState uint8

const (
	Unopened CellState = iota
	Opened
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Opened:
		return "opened"
	case Flagged:
		return "flagged"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	for _, v := range []CellState{Unopened, Opened, Flagged} {
		if string(text) == v.String() {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}

type CellContent uint8

const (
	Empty CellContent = iota
	Mine
)

func (c CellContent) String() string {
	if c == Mine {
		return "mine"
	}
	return "empty"
}

type Cell struct {
	Row, Col int
	State    CellState
	Content  CellContent
}

func (c Cell) IsMine() bool {
	return c.Content == Mine
}

type Point struct {
	Row, Col int
}

/*
 * Player knowledge of a cell, as sent to clients:
 *
 *  - 0 to 8 mean the cell is open and has that many adjacent mines.
 *  - -1 means the cell is flagged.
 *  - -2 means the cell is unopened.
 *  - 64..67 only appear once the round is over and mark where the
 *    mines were.
 */
type Glyph int8

const (
	Unknown          Glyph = -2
	Flag             Glyph = -1
	CorrectlyFlagged Glyph = 64
	ExplodedMine     Glyph = 65
	FalselyFlagged   Glyph = 66
	UnflaggedMine    Glyph = 67
)

func (g Glyph) String() string {
	switch {
	case g == Unknown:
		return "."
	case g == Flag:
		return "F"
	case g == 0:
		return " "
	case 0 < g && g <= 8:
		return strconv.Itoa(int(g))
	case g == CorrectlyFlagged:
		return "F"
	case g == ExplodedMine:
		return "X"
	case g == FalselyFlagged:
		return "x"
	case g == UnflaggedMine:
		return "*"
	default:
		return "!"
	}
}

type Grid []Glyph

func (g Grid) String(width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g[y*width+x].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CellView is what a player is allowed to know about a single cell.
type CellView struct {
	Row           int       `json:"row"`
	Col           int       `json:"col"`
	State         CellState `json:"state"`
	Glyph         Glyph     `json:"glyph"`
	AdjacentMines *int      `json:"adjacent_mines,omitempty"`
}
