package mines

import (
	"fmt"
	"math"
	"strings"
)

type RevealMode int

const (
	// RevealSingle opens only the requested cell.
	RevealSingle RevealMode = iota
	// RevealFloodFill also opens every cell reachable through cells
	// with no adjacent mines.
	RevealFloodFill
)

func (m RevealMode) String() string {
	switch m {
	case RevealSingle:
		return "single"
	case RevealFloodFill:
		return "flood"
	default:
		return fmt.Sprintf("RevealMode(%d)", int(m))
	}
}

func ParseRevealMode(s string) (RevealMode, error) {
	switch strings.ToLower(s) {
	case "", "single":
		return RevealSingle, nil
	case "flood", "floodfill", "flood-fill", "cascade":
		return RevealFloodFill, nil
	}
	return RevealSingle, fmt.Errorf("unknown reveal mode %q", s)
}

type Placement int

const (
	PlaceAuto Placement = iota
	PlaceRejection
	PlaceShuffle
)

func (p Placement) String() string {
	switch p {
	case PlaceAuto:
		return "auto"
	case PlaceRejection:
		return "reject"
	case PlaceShuffle:
		return "shuffle"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PlaceAuto, nil
	case "reject", "rejection":
		return PlaceRejection, nil
	case "shuffle", "fisher-yates":
		return PlaceShuffle, nil
	}
	return PlaceAuto, fmt.Errorf("unknown placement %q", s)
}

type Params struct {
	Width, Height, MineCount int
	Reveal                   RevealMode
	Placement                Placement
}

// DefaultParams mirrors the classic mobile layout: 30x30 with 30 mines.
var DefaultParams = Params{Width: 30, Height: 30, MineCount: 30}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Cells returns the number of cells of the field, or false when the
// dimensions are not positive or their product overflows an int.
func (p Params) Cells() (int, bool) {
	if p.Width <= 0 || p.Height <= 0 || p.Width > math.MaxInt/p.Height {
		return 0, false
	}
	return p.Width * p.Height, true
}

// CheckSize rejects fields that cannot be allocated, and fields of more
// than maxCells cells unless maxCells is 0.
func (p Params) CheckSize(maxCells int) error {
	cells, ok := p.Cells()
	if !ok || (maxCells > 0 && cells > maxCells) {
		return &ConfigError{
			Width: p.Width, Height: p.Height, MineCount: p.MineCount, MaxCells: maxCells,
		}
	}
	return nil
}

func (p Params) Validate() error {
	return p.ValidateLimit(0)
}

// ValidateLimit is [Params.Validate] with a cap on the field size.
func (p Params) ValidateLimit(maxCells int) error {
	if err := p.CheckSize(maxCells); err != nil {
		return err
	}
	if cells, _ := p.Cells(); p.MineCount <= 0 || p.MineCount >= cells {
		return &ConfigError{
			Width: p.Width, Height: p.Height, MineCount: p.MineCount, MaxCells: maxCells,
		}
	}
	return nil
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// String returns the "width:height:mines" seed of the layout.
func (p Params) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseParams(seed string) (Params, error) {
	var p Params
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return Params{}, fmt.Errorf(
			`invalid params seed (seed = "%s", n = %d, err = %w)`, seed, n, err,
		)
	}
	return p, nil
}
