package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrlogo/internal/config"
	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
)

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "facebook1.png")
	logo := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(logo.Pix); i += 4 {
		logo.Pix[i+2], logo.Pix[i+3] = 255, 255
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, logo))
	require.NoError(t, os.WriteFile(logoPath, buf.Bytes(), 0o644))

	out := filepath.Join(dir, defaultOutput)
	configPath := ""
	cmd := generateCmd(&configPath)
	cmd.SetArgs([]string{
		"--url", "https://www.facebook.com/profile.php?id=100027034642492",
		"--logo", logoPath,
		"--logo-size", "50",
		"--ec", "H",
		"--out", out,
	})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())

	c := img.Bounds().Dx() / 2
	_, _, b, _ := img.At(c, c).RGBA()
	assert.Equal(t, uint32(0xffff), b)
}

func TestGenerateCommandRequiresURL(t *testing.T) {
	configPath := ""
	cmd := generateCmd(&configPath)
	cmd.SetArgs([]string{"--out", filepath.Join(t.TempDir(), "x.png")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}

func TestGenerateFlagsApply(t *testing.T) {
	configPath := ""
	cmd := generateCmd(&configPath)
	require.NoError(t, cmd.ParseFlags([]string{"--url", "x", "--border", "0", "--shape", "circle", "--bg", "transparent"}))

	var f generateFlags
	f.url = "x"
	f.border = 0
	f.shape = "circle"
	f.bg = "transparent"

	req, err := generator.DefaultRequest(config.QRConfig{
		Foreground: "#000000", Background: "#ffffff", Version: 1, ErrorCorrection: "L",
		BoxSize: 10, Border: 4, LogoSize: 50, Shape: "square",
	})
	require.NoError(t, err)
	require.NoError(t, f.apply(cmd, &req))
	assert.Equal(t, 0, req.QR.Border)
	assert.Equal(t, qr.ShapeCircle, req.QR.Shape)
	assert.Equal(t, uint8(0), req.QR.Background.A)
	assert.Equal(t, 10, req.QR.BoxSize)
}
