// Package backdrop loads the images shown underneath the measuring overlay.
package backdrop

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the supported formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions Load accepts
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Supported reports whether the file extension is a known image format
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load decodes the image at path
func Load(path string) (image.Image, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported file type: %s (expected one of %s)",
			filepath.Ext(path), strings.Join(Extensions, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backdrop: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode backdrop %s: %w", path, err)
	}
	return img, nil
}
