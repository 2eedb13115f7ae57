package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("cell out of bounds")
	ErrInvalidConfiguration = errors.New("invalid minefield configuration")
)

type BoundsError struct {
	Row, Col      int
	Width, Height int
}

// [BoundsError] implements [error]
func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) out of bounds of %dx%d field", e.Row, e.Col, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

type ConfigError struct {
	Width, Height, MineCount int
	// MaxCells is the size limit in force, 0 if none.
	MaxCells int
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	cells, ok := Params{Width: e.Width, Height: e.Height}.Cells()
	switch {
	case e.Width <= 0 || e.Height <= 0:
		return fmt.Sprintf("cannot create a %dx%d field", e.Width, e.Height)
	case !ok:
		return fmt.Sprintf("a %dx%d field is too large", e.Width, e.Height)
	case e.MaxCells > 0 && cells > e.MaxCells:
		return fmt.Sprintf(
			"a %dx%d field is too large (at most %d cells)", e.Width, e.Height, e.MaxCells,
		)
	case e.MineCount <= 0:
		return fmt.Sprintf("mine count must be positive, got %d", e.MineCount)
	default:
		return fmt.Sprintf(
			"no room for %d mines on a %dx%d field (need fewer than %d)",
			e.MineCount, e.Width, e.Height, cells,
		)
	}
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
