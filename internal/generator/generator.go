// Package generator turns a per-request description into a finished QR code
// image: encode, overlay the logo, encode PNG, optionally read it back.
package generator

import (
	"bytes"
	"context"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrlogo/internal/compose"
	"github.com/cristianadrielbraun/qrlogo/internal/config"
	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
	"github.com/cristianadrielbraun/qrlogo/internal/imageio"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
	"github.com/cristianadrielbraun/qrlogo/internal/scan"
)

// DownloadName is the file name offered for the generated PNG.
const DownloadName = "custom_qr.png"

// Logo is an uploaded, not yet decoded, logo file.
type Logo struct {
	Filename string
	Data     []byte
}

// Request carries everything one generation needs.
type Request struct {
	QR       qr.Params
	Logo     *Logo
	LogoSize int
}

// Output is a generated code.
type Output struct {
	Image   image.Image
	PNG     []byte
	Version int
	Side    int
	// Scannable is nil when no read-back check ran.
	Scannable *bool
}

// Service generates codes. It holds no per-request state.
type Service struct {
	log        *logrus.Entry
	encoderFor func(qr.Shape) qr.Encoder
	verify     bool
}

// New returns a Service. verify enables the read-back check for codes that
// carry a logo.
func New(log *logrus.Entry, verify bool) *Service {
	return &Service{log: log, encoderFor: qr.NewEncoder, verify: verify}
}

// Generate runs one request to completion.
func (s *Service) Generate(ctx context.Context, req Request) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, qrerrors.ErrGeneration("cancelled", err)
	}
	if err := req.QR.Validate(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"data":    req.QR.Data,
		"version": req.QR.Version,
		"level":   req.QR.Level.String(),
		"box":     req.QR.BoxSize,
		"border":  req.QR.Border,
		"shape":   req.QR.Shape,
		"logo":    req.Logo != nil,
	}).Debug("generate start")

	var logo image.Image
	if req.Logo != nil {
		if req.LogoSize < 1 {
			return nil, qrerrors.ErrInvalidLogoSize(req.LogoSize)
		}
		img, err := imageio.DecodeLogo(bytes.NewReader(req.Logo.Data), req.Logo.Filename, req.LogoSize)
		if err != nil {
			return nil, err
		}
		logo = img
	}

	raster, err := s.encoderFor(req.QR.Shape).Encode(req.QR)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, qrerrors.ErrGeneration("cancelled", err)
	}

	img, err := compose.Composite(raster.Image, logo, req.LogoSize)
	if err != nil {
		return nil, err
	}

	data, err := imageio.PNGBytes(img)
	if err != nil {
		return nil, qrerrors.ErrGeneration("encode png", err)
	}

	out := &Output{
		Image:   img,
		PNG:     data,
		Version: raster.Version,
		Side:    img.Bounds().Dx(),
	}

	if s.verify && logo != nil {
		ok := scan.Readable(img, req.QR.Data)
		out.Scannable = &ok
		if !ok {
			s.log.WithField("level", req.QR.Level.String()).Warn("logo makes the code unreadable")
		}
	}

	s.log.WithFields(logrus.Fields{
		"version": out.Version,
		"side":    out.Side,
		"bytes":   len(out.PNG),
	}).Info("generated")
	return out, nil
}

// DefaultRequest builds a Request from configured defaults. Data and Logo
// are left for the caller.
func DefaultRequest(cfg config.QRConfig) (Request, error) {
	fg, err := qr.ParseHexColor(cfg.Foreground)
	if err != nil {
		return Request{}, err
	}
	bg, err := qr.ParseHexColor(cfg.Background)
	if err != nil {
		return Request{}, err
	}
	level, err := qr.ParseECLevel(cfg.ErrorCorrection)
	if err != nil {
		return Request{}, err
	}
	shape, err := qr.ParseShape(cfg.Shape)
	if err != nil {
		return Request{}, err
	}
	return Request{
		QR: qr.Params{
			Version:    cfg.Version,
			Level:      level,
			BoxSize:    cfg.BoxSize,
			Border:     cfg.Border,
			Foreground: fg,
			Background: bg,
			Shape:      shape,
			Fit:        cfg.Fit,
		},
		LogoSize: cfg.LogoSize,
	}, nil
}
