// Package qr renders QR codes for the PIX payload and the public letter link.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// GenerateBytes renders the payload as a PNG QR code of the given pixel size.
func GenerateBytes(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// GenerateDataURI renders the payload as an inline data: URI for direct
// embedding in an <img> tag.
func GenerateDataURI(payload string) (string, error) {
	png, err := GenerateBytes(payload, defaultSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
