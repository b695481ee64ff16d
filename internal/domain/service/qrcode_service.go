package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateShopQR generates a PNG QR code pointing at a shop's public storefront page.
	GenerateShopQR(shopSlug string) ([]byte, error)
}
