package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	// Register decoders for the upload formats accepted by the catalog.
	_ "image/gif"
	_ "image/png"
)

const (
	// MaxImageBytes is the upload size ceiling for catalog images.
	MaxImageBytes = 2 << 20

	imageMaxDim      = 1200
	imageJPEGQuality = 82
)

// ValidateImageUpload enforces the object-storage contract for images: at
// most 2MB and a MIME type starting with image/.
func ValidateImageUpload(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("image: empty upload")
	}
	if len(data) > MaxImageBytes {
		return fmt.Errorf("image: %d bytes exceeds the 2MB limit", len(data))
	}
	if mime := http.DetectContentType(data); !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("image: unsupported content type %s", mime)
	}
	return nil
}

// OptimizeImage re-encodes an upload as JPEG, downscaling to at most
// imageMaxDim on the longer side while preserving aspect ratio.
func OptimizeImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > imageMaxDim || height > imageMaxDim {
		if width > height {
			img = imaging.Resize(img, imageMaxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, imageMaxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: imageJPEGQuality}); err != nil {
		return nil, fmt.Errorf("image: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
