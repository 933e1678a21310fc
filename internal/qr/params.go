package qr

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

const (
	MinVersion = 1
	MaxVersion = 40
	MaxBoxSize = 50
	MaxBorder  = 40
	// MaxSide bounds the raster so a large version at a large box size
	// cannot allocate hundreds of megabytes.
	MaxSide = 4096
)

// Shape selects how individual modules are drawn.
type Shape string

const (
	ShapeSquare  Shape = "square"
	ShapeCircle  Shape = "circle"
	ShapeLiquid  Shape = "liquid"
	ShapeChain   Shape = "chain"
	ShapeHStripe Shape = "hstripe"
	ShapeVStripe Shape = "vstripe"
)

// Shapes lists the supported module shapes, square first.
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapeCircle, ShapeLiquid, ShapeChain, ShapeHStripe, ShapeVStripe}
}

// ParseShape maps a form value to a Shape. "rectangle" is accepted as an
// alias of square.
func ParseShape(s string) (Shape, error) {
	v := Shape(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case "", "rectangle":
		return ShapeSquare, nil
	}
	for _, sh := range Shapes() {
		if sh == v {
			return v, nil
		}
	}
	return ShapeSquare, qrerrors.ErrInvalidInput("module shape", fmt.Sprintf("unknown shape %q", s))
}

// Params describes one QR symbol to render.
type Params struct {
	Data       string
	Version    int
	Level      ECLevel
	BoxSize    int // pixels per module
	Border     int // quiet zone, in modules
	Foreground color.RGBA
	Background color.RGBA
	Shape      Shape
	// Fit lets the version grow past Version when Data does not fit.
	Fit bool
}

// Validate checks ranges without encoding anything.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Data) == "" {
		return qrerrors.ErrMissingInput("URL")
	}
	if p.Version < MinVersion || p.Version > MaxVersion {
		return qrerrors.ErrInvalidInput("version", fmt.Sprintf("must be between %d and %d, got %d", MinVersion, MaxVersion, p.Version))
	}
	if p.BoxSize < 1 || p.BoxSize > MaxBoxSize {
		return qrerrors.ErrInvalidInput("box size", fmt.Sprintf("must be between 1 and %d, got %d", MaxBoxSize, p.BoxSize))
	}
	if p.Border < 0 || p.Border > MaxBorder {
		return qrerrors.ErrInvalidInput("border", fmt.Sprintf("must be between 0 and %d, got %d", MaxBorder, p.Border))
	}
	if _, ok := ecLevelNames[p.Level]; !ok {
		return qrerrors.ErrInvalidInput("error correction level", fmt.Sprintf("unknown level %d", p.Level))
	}
	return nil
}

// SideLength is the raster side in pixels for a given version, border (in
// modules) and box size.
func SideLength(version, border, boxSize int) int {
	return (modulesFor(version) + 2*border) * boxSize
}

func modulesFor(version int) int {
	return 17 + 4*version
}

// Raster is an encoded QR symbol.
type Raster struct {
	Image   image.Image
	Version int
	// Modules is the symbol width in modules, quiet zone excluded.
	Modules int
}

// Side returns the raster width in pixels.
func (r *Raster) Side() int {
	return r.Image.Bounds().Dx()
}

func checkSide(version, border, boxSize int) error {
	if side := SideLength(version, border, boxSize); side > MaxSide {
		return qrerrors.ErrInvalidInput("box size",
			fmt.Sprintf("version %d at %dpx per module is %dpx wide, limit is %dpx", version, boxSize, side, MaxSide))
	}
	return nil
}
