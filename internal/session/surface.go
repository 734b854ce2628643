package session

import (
	"image/color"

	"github.com/philipparndt/gocalipers/pkg/geometry"
)

// Surface is the drawing layer the session renders onto
type Surface interface {
	// Viewport returns the size the surface should fill
	Viewport() (width, height float64)
	SetSize(width, height float64)
	Clear()
	Line(from, to geometry.Point, col color.Color, width float64)
	FillEllipse(center geometry.Point, rx, ry float64, col color.Color)
	FillRect(r geometry.Rect, col color.Color)
	StrokeRect(r geometry.Rect, col color.Color, width float64)
	// Text draws s with its baseline starting at at
	Text(s string, at geometry.Point, col color.Color, size float64)
	Visible() bool
	SetVisible(visible bool)
	// Flush presents everything drawn since Clear
	Flush()
}

// Prompter asks the user for a line of text.
// resolve receives the text and true, or false when the user cancelled.
// It may be called before Prompt returns or at any later point.
type Prompter interface {
	Prompt(message, defaultText string, resolve func(text string, ok bool))
}

// Modifiers holds the modifier keys held during an input event
type Modifiers struct {
	Alt, Control, Shift, Super bool
}

// PointerEvent is a mouse button or move event.
// Modifiers are carried through from the input source; the session does not
// act on them.
type PointerEvent struct {
	Position geometry.Point
	Modifiers
}

// KeyCode names a keyboard key
type KeyCode string

const (
	KeyC      KeyCode = "C"
	KeyEscape KeyCode = "Escape"
)

// KeyEvent is a key release
type KeyEvent struct {
	Code KeyCode
	Modifiers
}

// Pointer is a shorthand for an unmodified pointer event at x, y
func Pointer(x, y float64) PointerEvent {
	return PointerEvent{Position: geometry.NewPoint(x, y)}
}
