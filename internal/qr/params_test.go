package qr

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseECLevel(t *testing.T) {
	for _, name := range []string{"L", "m", " q ", "H"} {
		lvl, err := ParseECLevel(name)
		require.NoError(t, err)
		assert.Contains(t, "LMQH", lvl.String())
	}

	lvl, err := ParseECLevel("")
	require.NoError(t, err)
	assert.Equal(t, ECLevelL, lvl)

	_, err = ParseECLevel("X")
	assert.Error(t, err)

	for _, l := range Levels() {
		assert.Contains(t, matrixLevels, l)
		assert.Contains(t, styledLevels, l)
	}
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("rectangle")
	require.NoError(t, err)
	assert.Equal(t, ShapeSquare, s)

	s, err = ParseShape("Circle")
	require.NoError(t, err)
	assert.Equal(t, ShapeCircle, s)

	_, err = ParseShape("star")
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}, true},
		{"ff8800", color.RGBA{255, 136, 0, 255}, true},
		{"#FFF", color.RGBA{255, 255, 255, 255}, true},
		{"transparent", color.RGBA{0, 0, 0, 0}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, "#ff8800", HexColor(color.RGBA{255, 136, 0, 255}))
	assert.Equal(t, "transparent", HexColor(color.RGBA{}))
}
