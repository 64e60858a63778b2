// Package share builds the shareable URL for a calendar. The per-calendar
// URL is the only way into a calendar; sending it IS sharing the calendar.
package share

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// URL returns the bookmarkable per-calendar address.
func URL(baseURL string, calendarID string) string {
	return fmt.Sprintf("%s/family/%s", strings.TrimRight(baseURL, "/"), calendarID)
}

// QRCode renders the share URL as a PNG, for the in-person share path.
func QRCode(baseURL string, calendarID string) ([]byte, error) {
	png, err := qrcode.Encode(URL(baseURL, calendarID), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode share QR code: %w", err)
	}
	return png, nil
}
