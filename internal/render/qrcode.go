package render

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultQRCodeSizePx = 256
	maxQRCodeSizePx     = 2048
)

// QRCodePNG returns a PNG-encoded QR code for payload, sizePx pixels square.
// Non-positive sizes use the default; sizes are capped.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("empty qr payload")
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	if sizePx > maxQRCodeSizePx {
		sizePx = maxQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qrCode.PNG(sizePx)
}
