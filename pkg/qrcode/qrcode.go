package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders join links as QR codes.
type QRService struct {
	baseURL string // e.g. "https://lammatna.app/gatherings?joincode="
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode returns a PNG QR code for the gathering's join code.
func (s *QRService) GenerateQRCode(joinCode string, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", s.baseURL, joinCode)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
