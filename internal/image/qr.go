package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// QRCard renders text as a QR code centred on a white w×h card, so a deck
// list can be printed alongside its cards.
func QRCard(text string, w, h int) (image.Image, error) {
	side := min(w, h) * 9 / 10
	qr, err := GenerateQRImage(text, side)
	if err != nil {
		return nil, err
	}
	card := imaging.New(w, h, color.White)
	return imaging.PasteCenter(card, qr), nil
}
