package app

import (
	"image"
	"time"

	"fyne.io/fyne/v2/canvas"
)

// BackdropState holds the image shown underneath the overlay
type BackdropState struct {
	image    *canvas.Image
	path     string
	size     image.Point
	loadedAt time.Time
}

// Path returns the file the backdrop was loaded from
func (b *BackdropState) Path() string {
	return b.path
}

// Size returns the pixel size of the current backdrop
func (b *BackdropState) Size() image.Point {
	return b.size
}

// LoadedAt returns when the backdrop was last (re)loaded
func (b *BackdropState) LoadedAt() time.Time {
	return b.loadedAt
}
