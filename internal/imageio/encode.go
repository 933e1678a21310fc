package imageio

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
)

// JPEGQuality is used for every JPEG download.
const JPEGQuality = 92

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// PNGBytes encodes img as PNG into memory.
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJPEG flattens img onto bg (white when bg is transparent), since JPEG
// has no alpha, and writes it.
func EncodeJPEG(w io.Writer, img image.Image, bg color.RGBA) error {
	fill := color.RGBA{bg.R, bg.G, bg.B, 255}
	if bg.A == 0 {
		fill = color.RGBA{255, 255, 255, 255}
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, &image.Uniform{C: fill}, image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return jpeg.Encode(w, out, &jpeg.Options{Quality: JPEGQuality})
}

// DataURI embeds PNG bytes for an <img src>.
func DataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}
