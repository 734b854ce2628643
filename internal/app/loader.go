package app

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/canvas"
	"github.com/philipparndt/gocalipers/internal/backdrop"
)

func newBackdropImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	// One image pixel per screen unit so measurements are in image pixels
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	return img
}

// loadBackdrop decodes path and shows it underneath the overlay
func (a *App) loadBackdrop(path string) error {
	img, err := backdrop.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load backdrop: %w", err)
	}

	reloaded := a.Backdrop.Path() == path && !a.Backdrop.LoadedAt().IsZero()
	previous := a.Backdrop.LoadedAt()

	a.Backdrop.path = path
	a.Backdrop.size = img.Bounds().Size()
	a.Backdrop.loadedAt = time.Now()
	a.Backdrop.image.Image = img
	a.Backdrop.image.Refresh()

	if reloaded {
		a.Logger.Info("backdrop reloaded", "path", path,
			"width", a.Backdrop.size.X, "height", a.Backdrop.size.Y,
			"age", a.Backdrop.LoadedAt().Sub(previous))
	} else {
		a.Logger.Info("backdrop loaded", "path", path, "width", a.Backdrop.size.X, "height", a.Backdrop.size.Y)
	}

	// Keep annotations on top of the new image
	if a.session != nil {
		a.session.Resize()
	}
	return nil
}
