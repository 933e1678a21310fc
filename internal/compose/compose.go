// Package compose overlays a logo on the center of a QR raster.
package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// Composite returns qr with logo resized to size×size and drawn at its
// center. A nil logo returns qr itself. Neither input is modified and the
// result's bounds start at the origin.
//
// Logos with an alpha channel are hard-masked: a pixel is copied, fully
// opaque, wherever its alpha is non-zero and skipped otherwise. Opaque logos
// are pasted over the whole box.
func Composite(qr image.Image, logo image.Image, size int) (image.Image, error) {
	if qr == nil {
		return nil, qrerrors.ErrGeneration("composite", nil).WithDetails("no QR raster to draw on")
	}
	if logo == nil {
		return qr, nil
	}
	if size < 1 {
		return nil, qrerrors.ErrInvalidLogoSize(size)
	}

	bounds := qr.Bounds()
	if size > bounds.Dx() || size > bounds.Dy() {
		return nil, qrerrors.ErrInvalidDimension(size, bounds.Dx(), bounds.Dy())
	}

	resized := imaging.Resize(logo, size, size, imaging.Lanczos)
	at := Offset(bounds, size)

	if isOpaque(logo) {
		return imaging.Paste(qr, resized, at), nil
	}

	out := imaging.Clone(qr)
	at = at.Sub(bounds.Min)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := resized.PixOffset(x, y)
			if resized.Pix[i+3] == 0 {
				continue
			}
			j := out.PixOffset(at.X+x, at.Y+y)
			copy(out.Pix[j:j+3], resized.Pix[i:i+3])
			out.Pix[j+3] = 255
		}
	}
	return out, nil
}

// Offset is the top-left corner of a size×size box centered in bounds,
// rounding toward the top-left when the leftover space is odd.
func Offset(bounds image.Rectangle, size int) image.Point {
	return image.Point{
		X: bounds.Min.X + (bounds.Dx()-size)/2,
		Y: bounds.Min.Y + (bounds.Dy()-size)/2,
	}
}

// Box is the rectangle a size×size logo covers in bounds.
func Box(bounds image.Rectangle, size int) image.Rectangle {
	at := Offset(bounds, size)
	return image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return true
	}
	return false
}
