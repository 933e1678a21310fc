// Package scan reads QR codes back from rasters, used to check that a logo
// did not cover too much of a code.
package scan

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Decode returns the text encoded in the QR code found in img.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("no QR code found in image: %w", err)
	}
	return result.GetText(), nil
}

// Readable reports whether img decodes to exactly want.
func Readable(img image.Image, want string) bool {
	got, err := Decode(img)
	return err == nil && got == want
}
