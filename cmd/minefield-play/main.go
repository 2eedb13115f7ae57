// Command minefield-play plays a round in the terminal.
//
// Commands: "o row col" opens a cell, "f row col" toggles a flag,
// "n [width height mines]" starts over, "q" quits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var (
	log = logrus.New()

	width, height, mineCount int
	maxCells                 int
	reveal                   string
	debug                    bool
)

func init() {
	flag.IntVar(&width, "width", 9, "field width")
	flag.IntVar(&height, "height", 9, "field height")
	flag.IntVar(&mineCount, "mines", 10, "number of mines")
	flag.StringVar(&reveal, "reveal", "single", `reveal mode: "single" or "flood"`)
	flag.IntVar(&maxCells, "max-cells", 1<<16, "largest field allowed, 0 for no limit")
	flag.BoolVar(&debug, "debug", false, "debug logging")
}

var (
	coveredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
	headerStyle  = lipgloss.NewStyle().Faint(true)
	countStyles  = []lipgloss.Style{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

func glyphStyle(g mines.Glyph) lipgloss.Style {
	switch {
	case g == mines.Unknown:
		return coveredStyle
	case g == mines.Flag || g == mines.CorrectlyFlagged:
		return flagStyle
	case 0 <= g && g <= 8:
		return countStyles[g]
	default:
		return mineStyle
	}
}

func render(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString("    ")
	for col := range snap.Width {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%2d", col%100)))
	}
	b.WriteByte('\n')
	for row := range snap.Height {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%3d ", row)))
		for col := range snap.Width {
			g := snap.Grid[row*snap.Width+col]
			b.WriteString(" " + glyphStyle(g).Render(g.String()))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "mines: %d  flags: %d\n", snap.MineCount, snap.Flags)
	return b.String()
}

func play(in io.Reader, out io.Writer, s *session.Session) error {
	fmt.Fprint(out, render(s.Snapshot()))
	scanner := bufio.NewScanner(in)
	for fmt.Fprint(out, "> "); scanner.Scan(); fmt.Fprint(out, "> ") {
		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			return nil
		}
		if line == "" {
			continue
		}
		if err := s.Execute(line); err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		snap := s.Snapshot()
		fmt.Fprint(out, render(snap))
		switch snap.Outcome {
		case mines.Win:
			fmt.Fprintln(out, "You win!")
		case mines.Loss:
			fmt.Fprintln(out, "Game over!")
		default:
			continue
		}
		if err := s.Reset(s.Params()); err != nil {
			return err
		}
		fmt.Fprint(out, render(s.Snapshot()))
	}
	return scanner.Err()
}

func main() {
	flag.Parse()
	if debug {
		log.SetLevel(logrus.DebugLevel)
		mines.Log.SetLevel(logrus.DebugLevel)
		session.Log.SetLevel(logrus.DebugLevel)
	}

	mode, err := mines.ParseRevealMode(reveal)
	if err != nil {
		log.Fatal(err)
	}
	params := mines.Params{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Reveal:    mode,
	}
	s, err := session.New("local", params, mines.NewRand(), maxCells)
	if err != nil {
		log.Fatal("unable to start: ", err)
	}
	if err := play(os.Stdin, os.Stdout, s); err != nil {
		log.Fatal(err)
	}
}
