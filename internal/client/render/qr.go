package render

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QR renders content as a terminal QR code made of half-block characters,
// so a phone can open a product link straight from the kiosk screen.
func QR(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
