package qrcode

import (
	"fmt"
	"strings"

	"bazar/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// The base URL is the public storefront root, e.g. "https://bazar.example".
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateShopQR generates a PNG QR code pointing at a shop's public storefront page.
func (s *qrcodeService) GenerateShopQR(shopSlug string) ([]byte, error) {
	storefrontURL := fmt.Sprintf("%s/shops/%s", s.baseURL, shopSlug)

	qrCode, err := qrcode.New(storefrontURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
