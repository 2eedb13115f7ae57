package session

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
)

// Maps known commands to the argument counts they accept
var commandNargs = map[string][]int{
	"g": {0},    // get
	"o": {2},    // open row col
	"f": {2},    // flag row col
	"n": {0, 3}, // new round [width height mines]
}

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int, got %q", i+1, s)
		}
		ints[i] = n
	}
	return ints, nil
}

// Execute runs one text command against the session.
func (s *Session) Execute(c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if !slices.Contains(nargs, len(parts)-1) {
		return fmt.Errorf("%w for %q: %d", ErrArgCount, parts[0], len(parts)-1)
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return err
	}

	switch parts[0] {
	case "o":
		_, err = s.Reveal(args[0], args[1])
	case "f":
		_, err = s.ToggleFlag(args[0], args[1])
	case "n":
		params := s.Params()
		if len(args) == 3 {
			params.Width, params.Height, params.MineCount = args[0], args[1], args[2]
		}
		err = s.Reset(params)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", parts[0], err)
	}
	return nil
}

// ExecuteAll runs newline separated commands until the first error or the
// end of the round.
func (s *Session) ExecuteAll(text string) error {
	for _, c := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if err := s.Execute(c); err != nil {
			return err
		}
		if s.Outcome().Over() {
			break
		}
	}
	return nil
}
