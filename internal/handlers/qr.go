package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// generateQRCode renders a QR code for the given URL and returns the PNG bytes.
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// The standard writer only targets files, so round-trip through a
	// temporary one.
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("qr_%d.png", time.Now().UnixNano()))

	w, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8), // 8 pixels per module
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	os.Remove(tmpFile)
	return data, nil
}

// JoinQR serves a QR code pointing players at the join URL.
func (h *Handler) JoinQR(w http.ResponseWriter, r *http.Request) {
	url := h.joinURL
	if url == "" {
		url = "http://" + r.Host
	}
	png, err := generateQRCode(url)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
