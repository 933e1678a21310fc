package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrlogo/internal/config"
	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
)

func testService(verify bool) *Service {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(logrus.NewEntry(l), verify)
}

func defaultRequest(t *testing.T, data string) Request {
	t.Helper()
	req, err := DefaultRequest(config.QRConfig{
		Foreground:      "#000000",
		Background:      "#ffffff",
		Version:         1,
		ErrorCorrection: "L",
		BoxSize:         10,
		Border:          4,
		LogoSize:        50,
		Shape:           "square",
		Fit:             true,
	})
	require.NoError(t, err)
	req.QR.Data = data
	return req
}

func logoPNG(t *testing.T, side int, c color.NRGBA) *Logo {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &Logo{Filename: "logo.png", Data: buf.Bytes()}
}

func TestGenerateEndToEnd(t *testing.T) {
	out, err := testService(true).Generate(context.Background(), defaultRequest(t, "https://example.com"))
	require.NoError(t, err)
	assert.Nil(t, out.Scannable)

	img, err := png.Decode(bytes.NewReader(out.PNG))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	assert.Equal(t, qr.SideLength(out.Version, 4, 10), b.Dx())
	assert.Equal(t, out.Side, b.Dx())

	seen := map[color.RGBA]bool{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)] = true
		}
	}
	assert.Equal(t, map[color.RGBA]bool{
		{0, 0, 0, 255}:       true,
		{255, 255, 255, 255}: true,
	}, seen)
}

func TestGenerateMissingInput(t *testing.T) {
	_, err := testService(false).Generate(context.Background(), defaultRequest(t, "   "))
	require.Error(t, err)
	assert.Equal(t, qrerrors.KindMissingInput, qrerrors.KindOf(err))
}

func TestGenerateLogoTooLarge(t *testing.T) {
	req := defaultRequest(t, "hello")
	req.Logo = logoPNG(t, 20, color.NRGBA{255, 0, 0, 255})
	req.LogoSize = qr.SideLength(1, 4, 10) + 1

	_, err := testService(false).Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, qrerrors.KindInvalidDimension, qrerrors.KindOf(err))
}

func TestGenerateNonPositiveLogoSize(t *testing.T) {
	req := defaultRequest(t, "hello")
	req.Logo = logoPNG(t, 20, color.NRGBA{255, 0, 0, 255})
	req.LogoSize = 0

	_, err := testService(false).Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, qrerrors.KindInvalidDimension, qrerrors.KindOf(err))
	assert.Contains(t, err.Error(), "must be positive")
	assert.NotContains(t, err.Error(), "exceeds")
}

func TestGenerateUnreadableLogo(t *testing.T) {
	req := defaultRequest(t, "hello")
	req.Logo = &Logo{Filename: "logo.png", Data: []byte("nope")}

	_, err := testService(false).Generate(context.Background(), req)
	assert.Equal(t, qrerrors.KindUnreadableImage, qrerrors.KindOf(err))
}

func TestGenerateWithLogo(t *testing.T) {
	req := defaultRequest(t, "https://example.com")
	req.QR.Level = qr.ECLevelH
	req.Logo = logoPNG(t, 64, color.NRGBA{255, 0, 0, 255})
	req.LogoSize = 30

	out, err := testService(true).Generate(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out.Scannable)
	assert.True(t, *out.Scannable)

	center := out.Side / 2
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(out.Image.At(center, center)))
}

func TestGenerateLogoCoveringCode(t *testing.T) {
	req := defaultRequest(t, "hello")
	req.Logo = logoPNG(t, 8, color.NRGBA{0, 0, 0, 255})
	req.LogoSize = qr.SideLength(1, 4, 10) - 20

	out, err := testService(true).Generate(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out.Scannable)
	assert.False(t, *out.Scannable)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testService(false).Generate(ctx, defaultRequest(t, "hello"))
	assert.Equal(t, qrerrors.KindGeneration, qrerrors.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultRequestRejectsBadConfig(t *testing.T) {
	_, err := DefaultRequest(config.QRConfig{Foreground: "nope", Background: "#fff", ErrorCorrection: "L"})
	assert.Error(t, err)
	_, err = DefaultRequest(config.QRConfig{Foreground: "#000", Background: "#fff", ErrorCorrection: "Z"})
	assert.Error(t, err)
}
