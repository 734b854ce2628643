package measurement

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gocalipers/pkg/geometry"
)

var (
	// ErrDegenerateInterval is returned when the calibration drag has no length
	ErrDegenerateInterval = errors.New("calibration drag has zero length")
	// ErrInvalidInterval is returned for interval values that cannot scale a length
	ErrInvalidInterval = errors.New("interval must be a positive number")
)

// Phase describes how far a measurement has progressed
type Phase int

const (
	// Anchored: the calibration drag has started, no interval yet
	Anchored Phase = iota
	// Calibrated: interval known, waiting for the first endpoint
	Calibrated
	// EndpointSet: first endpoint captured, waiting for the second
	EndpointSet
	// Complete: both endpoints captured and length computed
	Complete
)

func (p Phase) String() string {
	switch p {
	case Anchored:
		return "anchored"
	case Calibrated:
		return "calibrated"
	case EndpointSet:
		return "endpoint-set"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Measurement is a single calibrated length measurement.
// Interval is in real-world units per pixel; zero means not yet calibrated.
type Measurement struct {
	IntervalPoint geometry.Point
	Interval      float64
	P1            *geometry.Point
	P2            *geometry.Point
	Length        float64
}

// New starts a measurement whose calibration drag begins at p
func New(p geometry.Point) *Measurement {
	return &Measurement{IntervalPoint: p}
}

// IsComplete reports whether both endpoints are set
func (m *Measurement) IsComplete() bool {
	return m.P1 != nil && m.P2 != nil
}

// IsCalibrated reports whether the interval has been set
func (m *Measurement) IsCalibrated() bool {
	return m.Interval != 0
}

// Phase returns the current phase of the measurement
func (m *Measurement) Phase() Phase {
	switch {
	case m.IsComplete():
		return Complete
	case m.P1 != nil:
		return EndpointSet
	case m.IsCalibrated():
		return Calibrated
	}
	return Anchored
}

// Anchor returns the start of the guide line: the calibration origin until
// the first endpoint exists, the first endpoint afterwards
func (m *Measurement) Anchor() geometry.Point {
	if m.IsCalibrated() && m.P1 != nil {
		return *m.P1
	}
	return m.IntervalPoint
}

// Calibrate sets the interval from a calibration drag of pixelDistance pixels
// that the user says is value units long
func (m *Measurement) Calibrate(pixelDistance, value float64) error {
	if pixelDistance == 0 {
		return ErrDegenerateInterval
	}
	if err := validateInterval(value); err != nil {
		return err
	}
	interval := value / pixelDistance
	if math.IsInf(interval, 0) || interval == 0 {
		return fmt.Errorf("%w: %v over %v pixels is out of range", ErrInvalidInterval, value, pixelDistance)
	}
	m.Interval = interval
	return nil
}

// SetFirstPoint records the first endpoint
func (m *Measurement) SetFirstPoint(p geometry.Point) {
	m.P1 = &p
}

// LengthTo returns the real-world length from the first endpoint to p
func (m *Measurement) LengthTo(p geometry.Point) float64 {
	if m.P1 == nil {
		return 0
	}
	return m.Interval * geometry.Distance(*m.P1, p)
}

// Complete records the second endpoint and computes the length
func (m *Measurement) Complete(p geometry.Point) {
	m.P2 = &p
	m.Length = m.LengthTo(p)
}

// Clone returns a deep copy
func (m *Measurement) Clone() *Measurement {
	c := *m
	if m.P1 != nil {
		p1 := *m.P1
		c.P1 = &p1
	}
	if m.P2 != nil {
		p2 := *m.P2
		c.P2 = &p2
	}
	return &c
}

func validateInterval(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInterval, value)
	}
	return nil
}

// FromReference creates a measurement whose reference interval runs from a to b
// and is value units long
func FromReference(a, b geometry.Point, value float64) (*Measurement, error) {
	m := New(a)
	if err := m.Calibrate(geometry.Distance(a, b), value); err != nil {
		return nil, err
	}
	return m, nil
}
