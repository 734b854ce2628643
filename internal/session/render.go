package session

import (
	"image/color"

	"github.com/philipparndt/gocalipers/internal/measurement"
	"github.com/philipparndt/gocalipers/pkg/geometry"
)

// Instructions is the help text shown at the top of the overlay
var Instructions = []string{
	"Measuring On-Screen Items:",
	"• Click and drag to measure an interval",
	"• Enter a number representing the length of the interval",
	"• Click and drag to measure the entire length",
}

const (
	panelWidth      = 500
	panelHeight     = 100
	panelTop        = 20
	panelPadding    = 5
	panelFirstLine  = 40
	panelLineHeight = 22
	textSize        = 16

	guideWidth       = 1
	liveLabelOffset  = 20
	markerRadius     = 3
	measurementWidth = 2
)

var (
	panelFill        = color.White
	textColor        = color.Black
	guideColor       = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
	measurementColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// Render redraws the whole surface from the current state
func (s *Session) Render() {
	w, h := s.surface.Viewport()
	s.surface.SetSize(w, h)
	s.surface.Clear()

	s.drawInstructions(w)
	s.drawCurrent()
	s.measurements.Each(func(_ int, m measurement.Measurement) {
		s.drawMeasurement(m)
	})

	s.surface.Flush()
}

// InstructionPanel returns the bounds of the help panel for a surface width
func InstructionPanel(width float64) geometry.Rect {
	return geometry.NewRect(width/2-panelWidth/2, panelTop, panelWidth, panelHeight)
}

func (s *Session) drawInstructions(width float64) {
	panel := InstructionPanel(width)
	s.surface.FillRect(panel, panelFill)
	s.surface.StrokeRect(panel, textColor, 1)
	for i, line := range Instructions {
		at := geometry.NewPoint(panel.X+panelPadding, panelFirstLine+float64(panelLineHeight*i))
		s.surface.Text(line, at, textColor, textSize)
	}
}

func (s *Session) drawCurrent() {
	if s.current == nil {
		return
	}

	// No guide between calibration and the first endpoint press
	phase := s.current.Phase()
	if phase == measurement.Calibrated {
		return
	}
	s.surface.Line(s.current.Anchor(), s.mouse, guideColor, guideWidth)

	if phase == measurement.EndpointSet {
		label := measurement.FormatLength(s.current.LengthTo(s.mouse))
		at := s.mouse.Add(geometry.NewPoint(liveLabelOffset, liveLabelOffset))
		s.surface.Text(label, at, textColor, textSize)
	}
}

func (s *Session) drawMeasurement(m measurement.Measurement) {
	if !m.IsComplete() {
		return
	}
	s.surface.FillEllipse(*m.P1, markerRadius, markerRadius, measurementColor)
	s.surface.FillEllipse(*m.P2, markerRadius, markerRadius, measurementColor)
	s.surface.Line(*m.P1, *m.P2, measurementColor, measurementWidth)
	s.surface.Text(measurement.FormatLength(m.Length), geometry.Midpoint(*m.P1, *m.P2), textColor, textSize)
}
