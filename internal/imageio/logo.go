// Package imageio decodes uploaded logos and encodes finished codes.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// LogoExtensions lists the accepted upload extensions.
var LogoExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"}

// AllowedLogo reports whether filename has an accepted extension.
func AllowedLogo(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range LogoExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DecodeLogo reads a logo image. SVG sources (by extension or content) are
// rasterized at svgSize×svgSize so they stay sharp at the final logo size.
func DecodeLogo(r io.Reader, filename string, svgSize int) (image.Image, error) {
	if filename != "" && !AllowedLogo(filename) {
		return nil, qrerrors.ErrUnreadableImage(filename,
			fmt.Errorf("unsupported file type, expected one of %s", strings.Join(LogoExtensions, ", ")))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, qrerrors.ErrUnreadableImage(filename, err)
	}
	if len(data) == 0 {
		return nil, qrerrors.ErrUnreadableImage(filename, fmt.Errorf("empty file"))
	}

	if strings.EqualFold(filepath.Ext(filename), ".svg") || looksLikeSVG(data) {
		img, err := rasterizeSVG(bytes.NewReader(data), svgSize)
		if err != nil {
			return nil, qrerrors.ErrUnreadableImage(filename, err)
		}
		return img, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, qrerrors.ErrUnreadableImage(filename, err)
	}
	return img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func rasterizeSVG(r io.Reader, size int) (image.Image, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}
