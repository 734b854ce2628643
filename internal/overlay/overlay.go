// Package overlay provides the fyne widget the measurement session draws on.
package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocalipers/internal/session"
	"github.com/philipparndt/gocalipers/pkg/geometry"
)

// textAscent approximates the distance from the top of a text object to its
// baseline as a fraction of the text size
const textAscent = 0.8

// Handler receives the input captured by the overlay
type Handler interface {
	PointerDown(ev session.PointerEvent)
	PointerUp(ev session.PointerEvent)
	PointerMove(ev session.PointerEvent)
	Resize()
}

// Overlay is a transparent widget that collects drawing primitives for one
// frame at a time and forwards mouse input
type Overlay struct {
	widget.BaseWidget
	handler Handler
	pending []fyne.CanvasObject
	objects []fyne.CanvasObject
}

var (
	_ session.Surface   = (*Overlay)(nil)
	_ desktop.Mouseable = (*Overlay)(nil)
	_ desktop.Hoverable = (*Overlay)(nil)
)

// New creates a hidden overlay
func New() *Overlay {
	o := &Overlay{}
	o.ExtendBaseWidget(o)
	o.Hide()
	return o
}

// SetHandler sets the receiver of pointer and resize events
func (o *Overlay) SetHandler(h Handler) {
	o.handler = h
}

// CreateRenderer creates the renderer for the widget
func (o *Overlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{overlay: o}
}

// Viewport returns the size of the window canvas, or the widget size when
// the overlay is not attached to a window yet
func (o *Overlay) Viewport() (float64, float64) {
	size := o.Size()
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(o); c != nil {
			size = c.Size()
		}
	}
	return float64(size.Width), float64(size.Height)
}

// SetSize resizes the widget
func (o *Overlay) SetSize(width, height float64) {
	o.Resize(fyne.NewSize(float32(width), float32(height)))
}

// Clear starts a new frame
func (o *Overlay) Clear() {
	o.pending = make([]fyne.CanvasObject, 0, len(o.objects))
}

// Line adds a straight line
func (o *Overlay) Line(from, to geometry.Point, col color.Color, width float64) {
	line := canvas.NewLine(col)
	line.StrokeWidth = float32(width)
	line.Position1 = toPos(from)
	line.Position2 = toPos(to)
	o.pending = append(o.pending, line)
}

// FillEllipse adds a filled ellipse
func (o *Overlay) FillEllipse(center geometry.Point, rx, ry float64, col color.Color) {
	marker := canvas.NewCircle(col)
	marker.Resize(fyne.NewSize(float32(2*rx), float32(2*ry)))
	marker.Move(fyne.NewPos(float32(center.X-rx), float32(center.Y-ry)))
	o.pending = append(o.pending, marker)
}

// FillRect adds a filled rectangle
func (o *Overlay) FillRect(r geometry.Rect, col color.Color) {
	rect := canvas.NewRectangle(col)
	placeRect(rect, r)
	o.pending = append(o.pending, rect)
}

// StrokeRect adds a rectangle outline
func (o *Overlay) StrokeRect(r geometry.Rect, col color.Color, width float64) {
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = col
	rect.StrokeWidth = float32(width)
	placeRect(rect, r)
	o.pending = append(o.pending, rect)
}

// Text adds a label whose baseline starts at at
func (o *Overlay) Text(s string, at geometry.Point, col color.Color, size float64) {
	text := canvas.NewText(s, col)
	text.TextSize = float32(size)
	text.Move(fyne.NewPos(float32(at.X), float32(at.Y-size*textAscent)))
	text.Resize(text.MinSize())
	o.pending = append(o.pending, text)
}

// SetVisible shows or hides the overlay
func (o *Overlay) SetVisible(visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

// Flush swaps in the frame built since Clear
func (o *Overlay) Flush() {
	o.objects = o.pending
	o.pending = nil
	o.Refresh()
}

// MouseDown forwards primary button presses
func (o *Overlay) MouseDown(ev *desktop.MouseEvent) {
	if o.handler == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	o.handler.PointerDown(toPointer(ev))
}

// MouseUp forwards primary button releases
func (o *Overlay) MouseUp(ev *desktop.MouseEvent) {
	if o.handler == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	o.handler.PointerUp(toPointer(ev))
}

// MouseIn forwards the entry position as a move
func (o *Overlay) MouseIn(ev *desktop.MouseEvent) {
	o.MouseMoved(ev)
}

// MouseMoved forwards pointer movement
func (o *Overlay) MouseMoved(ev *desktop.MouseEvent) {
	if o.handler == nil {
		return
	}
	o.handler.PointerMove(toPointer(ev))
}

// MouseOut is required by desktop.Hoverable
func (o *Overlay) MouseOut() {}

func toPos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func placeRect(rect *canvas.Rectangle, r geometry.Rect) {
	rect.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	rect.Resize(fyne.NewSize(float32(r.W), float32(r.H)))
}

func toPointer(ev *desktop.MouseEvent) session.PointerEvent {
	return session.PointerEvent{
		Position:  geometry.NewPoint(float64(ev.Position.X), float64(ev.Position.Y)),
		Modifiers: ToModifiers(ev.Modifier),
	}
}

// ToModifiers converts fyne modifier flags
func ToModifiers(m fyne.KeyModifier) session.Modifiers {
	return session.Modifiers{
		Alt:     m&fyne.KeyModifierAlt != 0,
		Control: m&fyne.KeyModifierControl != 0,
		Shift:   m&fyne.KeyModifierShift != 0,
		Super:   m&fyne.KeyModifierSuper != 0,
	}
}

// overlayRenderer implements fyne.WidgetRenderer
type overlayRenderer struct {
	overlay  *Overlay
	lastSize fyne.Size
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	if size == r.lastSize {
		return
	}
	r.lastSize = size
	if r.overlay.handler != nil {
		r.overlay.handler.Resize()
	}
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *overlayRenderer) Refresh() {
	canvas.Refresh(r.overlay)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return r.overlay.objects
}

func (r *overlayRenderer) Destroy() {}
