// Package session implements the interactive measurement session: input
// handling, calibration, the append-only history and the redraw routine.
package session

import (
	"errors"
	"log/slog"

	"github.com/philipparndt/gocalipers/internal/measurement"
	"github.com/philipparndt/gocalipers/pkg/geometry"
)

const (
	DefaultPromptMessage = "Enter an interval (must be a number):"
	DefaultPromptText    = "1.0"
)

// Options configures a Session
type Options struct {
	PromptMessage string
	PromptDefault string
	Logger        *slog.Logger
}

// Session owns all measurement state for one overlay.
// All methods must be called from the UI goroutine.
type Session struct {
	surface  Surface
	prompter Prompter
	opts     Options
	logger   *slog.Logger

	visible   bool
	measuring bool
	prompting bool

	current      *measurement.Measurement
	measurements measurement.History
	mouse        geometry.Point
}

// New creates a session drawing onto surface and asking prompter for
// calibration values
func New(surface Surface, prompter Prompter, opts Options) *Session {
	if opts.PromptMessage == "" {
		opts.PromptMessage = DefaultPromptMessage
	}
	if opts.PromptDefault == "" {
		opts.PromptDefault = DefaultPromptText
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		surface:  surface,
		prompter: prompter,
		opts:     opts,
		logger:   logger,
		visible:  surface.Visible(),
	}
}

// Visible reports whether the overlay is shown
func (s *Session) Visible() bool {
	return s.visible
}

// Measuring reports whether a pointer button is held over the visible overlay
func (s *Session) Measuring() bool {
	return s.measuring
}

// Prompting reports whether a calibration prompt is waiting for an answer
func (s *Session) Prompting() bool {
	return s.prompting
}

// Current returns a copy of the in-progress measurement, or nil
func (s *Session) Current() *measurement.Measurement {
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Measurements returns the completed measurements in completion order
func (s *Session) Measurements() []measurement.Measurement {
	return s.measurements.All()
}

// Mouse returns the last known pointer position
func (s *Session) Mouse() geometry.Point {
	return s.mouse
}

// syncVisible reads visibility back from the surface
func (s *Session) syncVisible() {
	s.visible = s.surface.Visible()
}

// Toggle shows or hides the overlay
func (s *Session) Toggle() {
	s.syncVisible()
	w, h := s.surface.Viewport()
	s.surface.SetSize(w, h)
	s.surface.SetVisible(!s.visible)
	s.syncVisible()
	s.logger.Debug("overlay toggled", "visible", s.visible)
	if s.visible {
		s.Render()
	}
}

// KeyUp handles a key release: Alt+C toggles, Escape hides
func (s *Session) KeyUp(ev KeyEvent) {
	if ev.Alt && ev.Code == KeyC {
		s.Toggle()
	}
	if ev.Code == KeyEscape && s.visible {
		s.Toggle()
	}
}

// Resize handles a viewport size change
func (s *Session) Resize() {
	s.redraw()
}

// PointerMove records the pointer position and redraws while measuring
func (s *Session) PointerMove(ev PointerEvent) {
	s.mouse = ev.Position
	if s.measuring {
		s.redraw()
	}
}

// PointerDown starts a new measurement or captures the first endpoint
func (s *Session) PointerDown(ev PointerEvent) {
	s.syncVisible()
	if s.prompting {
		return
	}
	s.measuring = s.visible
	if !s.visible {
		return
	}
	s.mouse = ev.Position

	if s.current != nil {
		s.logger.Debug("set first point", "point", ev.Position)
		s.current.SetFirstPoint(ev.Position)
		return
	}

	s.logger.Debug("new measurement", "point", ev.Position)
	s.current = measurement.New(ev.Position)
}

// PointerUp finishes the calibration drag or the measurement drag
func (s *Session) PointerUp(ev PointerEvent) {
	s.measuring = false
	s.syncVisible()
	if !s.visible || s.prompting || s.current == nil {
		return
	}
	s.mouse = ev.Position

	if !s.current.IsCalibrated() {
		s.beginCalibration(ev.Position)
		return
	}

	if s.current.P1 == nil {
		// Release without a matching press on the overlay
		s.logger.Debug("ignoring release without first point", "point", ev.Position)
		return
	}

	s.current.Complete(ev.Position)
	s.measurements.Append(s.current)
	s.logger.Debug("completed measurement",
		"length", s.current.Length,
		"p1", *s.current.P1,
		"p2", *s.current.P2,
		"count", s.measurements.Len())
	s.current = nil
	s.Render()
}

func (s *Session) beginCalibration(release geometry.Point) {
	pixels := geometry.Distance(s.current.IntervalPoint, release)
	if pixels == 0 {
		s.logger.Warn("discarding calibration drag with zero length", "point", release)
		s.current = nil
		s.Render()
		return
	}

	s.prompting = true
	s.askInterval(pixels)
}

func (s *Session) askInterval(pixels float64) {
	s.prompter.Prompt(s.opts.PromptMessage, s.opts.PromptDefault, func(text string, ok bool) {
		s.resolveInterval(pixels, text, ok)
	})
}

func (s *Session) resolveInterval(pixels float64, text string, ok bool) {
	if !s.prompting || s.current == nil {
		return
	}

	if !ok {
		s.logger.Debug("calibration cancelled")
		s.prompting = false
		s.current = nil
		s.redraw()
		return
	}

	value, err := measurement.ParseInterval(text)
	if err == nil {
		err = s.current.Calibrate(pixels, value)
	}
	if err != nil {
		if errors.Is(err, measurement.ErrInvalidInterval) {
			s.logger.Debug("rejected interval, asking again", "input", text)
			s.askInterval(pixels)
			return
		}
		s.logger.Warn("calibration failed", "error", err)
		s.prompting = false
		s.current = nil
		s.redraw()
		return
	}

	s.logger.Debug("set interval", "pixels", pixels, "value", value, "interval", s.current.Interval)
	s.prompting = false
	s.redraw()
}

// redraw renders only while the overlay is shown
func (s *Session) redraw() {
	s.syncVisible()
	if s.visible {
		s.Render()
	}
}
