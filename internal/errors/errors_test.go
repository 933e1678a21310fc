package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("typed error", func(t *testing.T) {
		err := ErrInvalidDimension(300, 290, 290)
		assert.Equal(t, KindInvalidDimension, KindOf(err))
		assert.True(t, Is(err, KindInvalidDimension))
		assert.Contains(t, err.Error(), "logo size 300 exceeds raster 290x290")
	})

	t.Run("wrapped typed error", func(t *testing.T) {
		err := fmt.Errorf("compose: %w", ErrMissingInput("URL"))
		assert.Equal(t, KindMissingInput, KindOf(err))
	})

	t.Run("foreign error counts as generation", func(t *testing.T) {
		assert.Equal(t, KindGeneration, KindOf(io.EOF))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, Kind(""), KindOf(nil))
		assert.False(t, Is(nil, KindGeneration))
	})
}

func TestInvalidLogoSize(t *testing.T) {
	err := ErrInvalidLogoSize(0)
	assert.Equal(t, KindInvalidDimension, KindOf(err))
	assert.Equal(t, "Logo size must be positive: got 0", err.Error())
}

func TestUnwrap(t *testing.T) {
	err := ErrUnreadableImage("logo.png", io.ErrUnexpectedEOF)
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "Could not read logo image: logo.png: unexpected EOF", err.Error())

	gen := ErrGeneration("encode", io.ErrShortWrite)
	assert.True(t, stderrors.Is(gen, io.ErrShortWrite))
	assert.Equal(t, "encode: short write", gen.Details)
}
