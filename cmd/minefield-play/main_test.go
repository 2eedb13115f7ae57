package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

func TestPlay(t *testing.T) {
	s, err := session.New("test", mines.Params{Width: 2, Height: 2, MineCount: 1}, nil, 0)
	require.NoError(t, err)
	require.NoError(t, s.ResetWithMines(2, 2, mines.Point{Row: 0, Col: 0}))

	var out bytes.Buffer
	in := strings.NewReader("o 0 1\nbogus\n\no 1 0\no 1 1\nq\no 0 0\n")
	require.NoError(t, play(in, &out, s))

	text := out.String()
	assert.Contains(t, text, "error: unknown command")
	assert.Contains(t, text, "You win!")
	assert.NotContains(t, text, "Game over!")

	// a fresh round started after the win
	snap := s.Snapshot()
	assert.Equal(t, mines.Continue, snap.Outcome)
	for _, g := range snap.Grid {
		assert.Equal(t, mines.Unknown, g)
	}
}

func TestRender(t *testing.T) {
	snap := session.Snapshot{
		Width: 2, Height: 1, MineCount: 1, Flags: 1,
		Grid: mines.Grid{mines.Flag, 1},
	}
	text := render(snap)
	assert.Contains(t, text, "mines: 1  flags: 1")
	assert.Equal(t, 3, strings.Count(text, "\n"))
}
