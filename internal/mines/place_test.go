package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementResolve(t *testing.T) {
	assert.Equal(t, PlaceRejection, PlaceAuto.resolve(100, 10))
	assert.Equal(t, PlaceRejection, PlaceAuto.resolve(100, 50))
	assert.Equal(t, PlaceShuffle, PlaceAuto.resolve(100, 51))
	assert.Equal(t, PlaceRejection, PlaceRejection.resolve(100, 99))
	assert.Equal(t, PlaceShuffle, PlaceShuffle.resolve(100, 1))
}

func TestPlaceMines(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "9x9(10)", params: Params{Width: 9, Height: 9, MineCount: 10}},
		{name: "9x9(35)", params: Params{Width: 9, Height: 9, MineCount: 35}},
		{name: "16x16(40)", params: Params{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: Params{Width: 30, Height: 16, MineCount: 99}},
		{name: "30x30(899)", params: Params{Width: 30, Height: 30, MineCount: 899}},
	}

	for _, test := range tests {
		for _, how := range []Placement{PlaceRejection, PlaceShuffle} {
			t.Run(test.name+"/"+how.String(), func(t *testing.T) {
				t.Parallel()
				r := rand.New(rand.NewPCG(1, 2))
				w, h, mc := test.params.Unpack()
				for range 20 {
					grid := placeMines(w, h, mc, how, r)
					assert.Len(t, grid, w*h)
					n := 0
					for _, mine := range grid {
						if mine {
							n++
						}
					}
					assert.Equal(t, mc, n)
				}
			})
		}
	}
}

func TestPlaceMinesSpreads(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	hits := make([]int, 9)
	for range 900 {
		for i, mine := range placeMines(3, 3, 1, PlaceShuffle, r) {
			if mine {
				hits[i]++
			}
		}
	}
	for i, n := range hits {
		assert.Greater(t, n, 50, "cell %d", i)
	}
}
