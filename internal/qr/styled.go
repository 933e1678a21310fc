package qr

import (
	"bytes"
	"image/png"

	yqr "github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// StyledEncoder renders through yeqown/go-qrcode's standard writer, which
// knows how to draw circle and connected module shapes. Shapes other than
// square are anti-aliased, so the output is not strictly two-colored.
type StyledEncoder struct{}

// Encode implements Encoder.
func (StyledEncoder) Encode(p Params) (*Raster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	qrc, err := styledCode(p)
	if err != nil {
		return nil, err
	}
	dim := qrc.Dimension()
	if dim <= 0 {
		return nil, qrerrors.ErrGeneration("encode", nil).WithDetails("invalid QR matrix dimension")
	}
	version := (dim - 17) / 4
	if err := checkSide(version, p.Border, p.BoxSize); err != nil {
		return nil, err
	}

	buf := &bufferCloser{}
	w := standard.NewWithWriter(buf, styledOptions(p)...)
	if err := qrc.Save(w); err != nil {
		return nil, qrerrors.ErrGeneration("render", err)
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, qrerrors.ErrGeneration("decode rendered image", err)
	}
	return &Raster{Image: img, Version: version, Modules: dim}, nil
}

func styledCode(p Params) (*yqr.QRCode, error) {
	var lastErr error
	for v := p.Version; v <= MaxVersion; v++ {
		qrc, err := yqr.NewWith(p.Data, yqr.WithVersion(v), styledLevels[p.Level])
		if err == nil {
			return qrc, nil
		}
		lastErr = err
		if !p.Fit {
			break
		}
	}
	return nil, qrerrors.ErrGeneration("encode", lastErr)
}

func styledOptions(p Params) []standard.ImageOption {
	opts := []standard.ImageOption{
		standard.WithQRWidth(uint8(p.BoxSize)),
		standard.WithBorderWidth(p.Border * p.BoxSize),
		standard.WithFgColor(p.Foreground),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}
	if p.Background.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(p.Background))
	}

	switch p.Shape {
	case ShapeCircle:
		opts = append(opts, standard.WithCircleShape())
	case ShapeLiquid:
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()}))
	case ShapeChain:
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()}))
	case ShapeHStripe:
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.HStripeBlock(0.85)}))
	case ShapeVStripe:
		opts = append(opts, standard.WithCustomShape(&customShape{drawFunc: shapes.VStripeBlock(0.85)}))
	}
	return opts
}

// customShape adapts a shapes package draw function to standard.IShape.
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// DrawFinder draws finder patterns with the same function.
func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// bufferCloser lets the standard writer target memory instead of a file.
type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }
