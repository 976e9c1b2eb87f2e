package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_EncodeURL(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.EncodeURL("https://id.vk.com/auth?app_id=12345&state=abc")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_EncodeURL_Empty(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.EncodeURL("")
	assert.Error(t, err)
}

func TestQRCodeService_EncodeURL_DifferentSizes(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		qrBytes, err := NewQRCodeService(size, "M").EncodeURL("https://example.com/auth")
		require.NoError(t, err)
		assert.NotEmpty(t, qrBytes)
	}
}
