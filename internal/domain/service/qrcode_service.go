package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// EncodeURL renders the given URL as a PNG QR code image.
	EncodeURL(url string) ([]byte, error)
}
