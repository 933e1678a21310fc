package qr

import (
	"image"
	"image/draw"

	skip2 "github.com/skip2/go-qrcode"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// Encoder turns Params into a raster.
type Encoder interface {
	Encode(p Params) (*Raster, error)
}

// NewEncoder picks the encoder able to draw the requested shape.
func NewEncoder(shape Shape) Encoder {
	if shape == "" || shape == ShapeSquare {
		return MatrixEncoder{}
	}
	return StyledEncoder{}
}

// MatrixEncoder paints the module matrix from skip2/go-qrcode itself, so the
// output holds exactly the two requested colors and its side is always
// SideLength(version, border, boxSize).
type MatrixEncoder struct{}

// Encode implements Encoder.
func (MatrixEncoder) Encode(p Params) (*Raster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	code, err := forcedVersion(p)
	if err != nil {
		return nil, err
	}
	if err := checkSide(code.VersionNumber, p.Border, p.BoxSize); err != nil {
		return nil, err
	}

	code.DisableBorder = true
	bitmap := trimQuietZone(code.Bitmap(), code.VersionNumber)
	modules := len(bitmap)

	side := (modules + 2*p.Border) * p.BoxSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: p.Background}, image.Point{}, draw.Src)

	fg := &image.Uniform{C: p.Foreground}
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + p.Border) * p.BoxSize
			y0 := (y + p.Border) * p.BoxSize
			draw.Draw(img, image.Rect(x0, y0, x0+p.BoxSize, y0+p.BoxSize), fg, image.Point{}, draw.Src)
		}
	}

	return &Raster{Image: img, Version: code.VersionNumber, Modules: modules}, nil
}

// forcedVersion encodes at p.Version, growing the version when p.Fit is set
// and the data does not fit.
func forcedVersion(p Params) (*skip2.QRCode, error) {
	level := matrixLevels[p.Level]
	var lastErr error
	for v := p.Version; v <= MaxVersion; v++ {
		code, err := skip2.NewWithForcedVersion(p.Data, v, level)
		if err == nil {
			return code, nil
		}
		lastErr = err
		if !p.Fit {
			break
		}
	}
	return nil, qrerrors.ErrGeneration("encode", lastErr)
}

// trimQuietZone drops the 4-module quiet zone if the encoder left it on.
func trimQuietZone(bitmap [][]bool, version int) [][]bool {
	const quiet = 4
	want := modulesFor(version)
	if len(bitmap) != want+2*quiet {
		return bitmap
	}
	out := make([][]bool, want)
	for i := range out {
		out[i] = bitmap[i+quiet][quiet : quiet+want]
	}
	return out
}
