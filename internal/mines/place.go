package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Above this share of mined cells rejection sampling spends most of its
// draws on cells that already hold a mine.
const autoShuffleDensity = 0.5

func (p Placement) resolve(total, mineCount int) Placement {
	if p != PlaceAuto {
		return p
	}
	if float64(mineCount) > autoShuffleDensity*float64(total) {
		return PlaceShuffle
	}
	return PlaceRejection
}

// placeMines returns a width*height mask with exactly mineCount set cells.
// mineCount must already be validated against the field size.
func placeMines(width, height, mineCount int, how Placement, r *rand.Rand) []bool {
	total := width * height
	grid := make([]bool, total)

	switch how.resolve(total, mineCount) {
	case PlaceShuffle:
		/*
		 * Write down every cell index and pick mineCount off the
		 * list at random, moving the tail into each hole.
		 */
		candidates := make([]int, total)
		for i := range candidates {
			candidates[i] = i
		}
		k := total
		for range mineCount {
			i := r.IntN(k)
			grid[candidates[i]] = true
			k--
			candidates[i] = candidates[k]
		}
		Log.WithFields(logrus.Fields{
			"width": width, "height": height, "mines": mineCount,
		}).Debug("placed mines by shuffle")

	default:
		draws := 0
		for placed := 0; placed < mineCount; {
			draws++
			row, col := r.IntN(height), r.IntN(width)
			if i := row*width + col; !grid[i] {
				grid[i] = true
				placed++
			}
		}
		Log.WithFields(logrus.Fields{
			"width": width, "height": height, "mines": mineCount,
			"draws": draws,
		}).Debug("placed mines by rejection sampling")
	}

	return grid
}
