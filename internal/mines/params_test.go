package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsSeed(t *testing.T) {
	p := Params{Width: 16, Height: 30, MineCount: 99}
	assert.Equal(t, "16:30:99", p.String())

	parsed, err := ParseParams(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)

	_, err = ParseParams("16:30")
	assert.Error(t, err)
	_, err = ParseParams("a:b:c")
	assert.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams.Validate())
	assert.NoError(t, Params{Width: 1, Height: 2, MineCount: 1}.Validate())
	assert.ErrorIs(t, Params{Width: 1, Height: 1, MineCount: 1}.Validate(), ErrInvalidConfiguration)
	assert.ErrorIs(t, Params{Width: 5, Height: 5}.Validate(), ErrInvalidConfiguration)
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		in   string
		want RevealMode
		ok   bool
	}{
		{"", RevealSingle, true},
		{"single", RevealSingle, true},
		{"Flood", RevealFloodFill, true},
		{"cascade", RevealFloodFill, true},
		{"bogus", RevealSingle, false},
	}
	for _, test := range tests {
		got, err := ParseRevealMode(test.in)
		assert.Equal(t, test.ok, err == nil, test.in)
		assert.Equal(t, test.want, got, test.in)
	}

	p, err := ParsePlacement("shuffle")
	require.NoError(t, err)
	assert.Equal(t, PlaceShuffle, p)
	_, err = ParsePlacement("sometimes")
	assert.Error(t, err)
}
