package services

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// NormalizeSerials cleans a batch of captured serial numbers: whitespace is
// trimmed, empties dropped, duplicates removed (first occurrence wins) and
// the result is capped at target entries. Scanned and manually typed serials
// go through the same path, so camera fallback costs nothing.
func NormalizeSerials(raw []string, target int) []string {
	if target <= 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, s := range raw {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == target {
			break
		}
	}
	return out
}

// SerialBarcodePNG renders a serial number as a Code 128 barcode PNG for
// printed unit labels.
func SerialBarcodePNG(serial string) ([]byte, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, fmt.Errorf("serials: empty serial")
	}

	code, err := code128.Encode(serial)
	if err != nil {
		return nil, fmt.Errorf("serials: encode %q: %w", serial, err)
	}
	scaled, err := barcode.Scale(code, 300, 80)
	if err != nil {
		return nil, fmt.Errorf("serials: scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("serials: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
