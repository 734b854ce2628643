// Package raster provides an in-memory drawing surface used for headless
// rendering and image export.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/philipparndt/gocalipers/pkg/geometry"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Surface draws onto an RGBA image
type Surface struct {
	img       *image.RGBA
	backdrop  image.Image
	viewportW int
	viewportH int
	visible   bool
	flushes   int
	faces     map[float64]font.Face
}

// New creates a hidden surface with the given viewport size
func New(width, height int) *Surface {
	return &Surface{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		viewportW: width,
		viewportH: height,
		faces:     make(map[float64]font.Face),
	}
}

// SetBackdrop sets the image drawn underneath every frame.
// It is scaled to the surface when the sizes differ.
func (s *Surface) SetBackdrop(img image.Image) {
	s.backdrop = img
}

// SetViewport changes the size the surface fills on the next render
func (s *Surface) SetViewport(width, height int) {
	s.viewportW, s.viewportH = width, height
}

// Viewport returns the configured viewport size
func (s *Surface) Viewport() (float64, float64) {
	return float64(s.viewportW), float64(s.viewportH)
}

// SetSize reallocates the image when the size changes
func (s *Surface) SetSize(width, height float64) {
	w, h := int(math.Round(width)), int(math.Round(height))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Clear resets the frame to the backdrop, or to transparent
func (s *Surface) Clear() {
	bounds := s.img.Bounds()
	draw.Draw(s.img, bounds, image.Transparent, image.Point{}, draw.Src)
	if s.backdrop == nil {
		return
	}
	if s.backdrop.Bounds().Size() == bounds.Size() {
		draw.Draw(s.img, bounds, s.backdrop, s.backdrop.Bounds().Min, draw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(s.img, bounds, s.backdrop, s.backdrop.Bounds(), xdraw.Src, nil)
}

// Line draws a straight line
func (s *Surface) Line(from, to geometry.Point, col color.Color, width float64) {
	drawLine(s.img,
		int(math.Round(from.X)), int(math.Round(from.Y)),
		int(math.Round(to.X)), int(math.Round(to.Y)),
		brush(width), col)
}

// FillEllipse fills an ellipse centred on center
func (s *Surface) FillEllipse(center geometry.Point, rx, ry float64, col color.Color) {
	fillEllipse(s.img, center.X, center.Y, rx, ry, col)
}

// FillRect fills a rectangle
func (s *Surface) FillRect(r geometry.Rect, col color.Color) {
	fillRect(s.img, toImageRect(r), col)
}

// StrokeRect outlines a rectangle
func (s *Surface) StrokeRect(r geometry.Rect, col color.Color, width float64) {
	strokeRect(s.img, toImageRect(r), brush(width), col)
}

// Text draws s with its baseline at at
func (s *Surface) Text(text string, at geometry.Point, col color.Color, size float64) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(col),
		Face: s.face(size),
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(text)
}

// Visible reports the display flag
func (s *Surface) Visible() bool {
	return s.visible
}

// SetVisible sets the display flag
func (s *Surface) SetVisible(visible bool) {
	s.visible = visible
}

// Flush counts the finished frame
func (s *Surface) Flush() {
	s.flushes++
}

// Frames returns how many frames have been flushed
func (s *Surface) Frames() int {
	return s.flushes
}

// Image returns the current frame
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// WritePNG encodes the current frame as PNG
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
)

// face returns a Go Regular face at size, falling back to the fixed 7x13 face
func (s *Surface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}

	goRegularOnce.Do(func() {
		goRegular, _ = opentype.Parse(goregular.TTF)
	})

	var face font.Face = basicfont.Face7x13
	if goRegular != nil && size > 0 {
		f, err := opentype.NewFace(goRegular, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			face = f
		}
	}
	s.faces[size] = face
	return face
}

func brush(width float64) int {
	w := int(math.Round(width))
	if w < 1 {
		return 1
	}
	return w
}

func toImageRect(r geometry.Rect) image.Rectangle {
	lo, hi := r.Min(), r.Max()
	return image.Rect(
		int(math.Round(lo.X)), int(math.Round(lo.Y)),
		int(math.Round(hi.X)), int(math.Round(hi.Y)),
	)
}
