package session

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/philipparndt/gocalipers/internal/measurement"
)

func newTestSession(answers ...string) (*Session, *recordingSurface, *scriptedPrompter) {
	surface := newRecordingSurface()
	prompter := &scriptedPrompter{answers: answers}
	s := New(surface, prompter, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	return s, surface, prompter
}

func drag(s *Session, x1, y1, x2, y2 float64) {
	s.PointerDown(Pointer(x1, y1))
	s.PointerMove(Pointer(x2, y2))
	s.PointerUp(Pointer(x2, y2))
}

func TestStartsHidden(t *testing.T) {
	s, surface, _ := newTestSession()

	if s.Visible() {
		t.Error("session should start hidden")
	}
	if surface.frames != 0 {
		t.Errorf("expected no frames before toggle, got %d", surface.frames)
	}
}

func TestToggleRendersWhenShown(t *testing.T) {
	s, surface, _ := newTestSession()

	s.Toggle()
	if !s.Visible() || !surface.visible {
		t.Fatal("Toggle should show the overlay")
	}
	if surface.frames != 1 {
		t.Errorf("expected 1 frame after showing, got %d", surface.frames)
	}
	if surface.count("text") != len(Instructions) {
		t.Errorf("expected %d instruction lines, got %d", len(Instructions), surface.count("text"))
	}
	if !surface.has("fillrect {150 20 500 100}") {
		t.Errorf("instruction panel not centered: %v", surface.ops)
	}

	s.Toggle()
	if s.Visible() || surface.visible {
		t.Error("second Toggle should hide the overlay")
	}
	if surface.frames != 1 {
		t.Errorf("hiding should not render, got %d frames", surface.frames)
	}
}

func TestVisibilityIsReadBackFromSurface(t *testing.T) {
	s, surface, _ := newTestSession()

	// Someone else shows the surface
	surface.visible = true
	s.PointerDown(Pointer(10, 10))

	if !s.Visible() {
		t.Error("session should pick up visibility from the surface")
	}
	if s.Current() == nil {
		t.Error("pointer down on a visible surface should start a measurement")
	}
}

func TestKeyUp(t *testing.T) {
	s, _, _ := newTestSession()

	s.KeyUp(KeyEvent{Code: KeyEscape})
	if s.Visible() {
		t.Error("Escape must not show a hidden overlay")
	}

	s.KeyUp(KeyEvent{Code: KeyC})
	if s.Visible() {
		t.Error("C without Alt must not toggle")
	}

	s.KeyUp(KeyEvent{Code: KeyC, Modifiers: Modifiers{Alt: true}})
	if !s.Visible() {
		t.Fatal("Alt+C should show the overlay")
	}

	s.KeyUp(KeyEvent{Code: KeyEscape})
	if s.Visible() {
		t.Error("Escape should hide a visible overlay")
	}
}

func TestPointerIgnoredWhileHidden(t *testing.T) {
	s, surface, prompter := newTestSession("50")

	drag(s, 0, 0, 100, 0)

	if s.Current() != nil {
		t.Error("hidden overlay must not start measurements")
	}
	if s.Measuring() {
		t.Error("hidden overlay must not be measuring")
	}
	if prompter.asked != 0 {
		t.Errorf("hidden overlay must not prompt, asked %d times", prompter.asked)
	}
	if surface.frames != 0 {
		t.Errorf("hidden overlay must not render, got %d frames", surface.frames)
	}
}

func TestFullMeasurementScenario(t *testing.T) {
	s, surface, prompter := newTestSession("50")
	s.Toggle()

	s.PointerDown(Pointer(0, 0))
	if !s.Measuring() {
		t.Error("pointer down should start measuring")
	}
	cur := s.Current()
	if cur == nil || cur.Phase() != measurement.Anchored {
		t.Fatalf("expected anchored measurement, got %+v", cur)
	}

	s.PointerMove(Pointer(100, 0))
	if !surface.has("line (0.0, 0.0) (100.0, 0.0) w1") {
		t.Errorf("expected guide line from interval point, got %v", surface.ops)
	}

	s.PointerUp(Pointer(100, 0))
	if s.Measuring() {
		t.Error("pointer up should stop measuring")
	}
	if prompter.asked != 1 {
		t.Fatalf("expected one prompt, got %d", prompter.asked)
	}
	if prompter.messages[0] != DefaultPromptMessage+"|"+DefaultPromptText {
		t.Errorf("unexpected prompt %q", prompter.messages[0])
	}
	cur = s.Current()
	if cur == nil || cur.Interval != 0.5 {
		t.Fatalf("expected interval 0.5, got %+v", cur)
	}

	s.PointerDown(Pointer(0, 0))
	s.PointerMove(Pointer(0, 100))
	if !surface.has("line (0.0, 0.0) (0.0, 100.0) w1") {
		t.Errorf("expected guide line from first point, got %v", surface.ops)
	}
	if !surface.has(`text "50.00" (20.0, 120.0)`) {
		t.Errorf("expected live length next to pointer, got %v", surface.ops)
	}

	s.PointerUp(Pointer(0, 200))
	if s.Current() != nil {
		t.Error("completed measurement should clear current")
	}

	ms := s.Measurements()
	if len(ms) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(ms))
	}
	if math.Abs(ms[0].Length-100) > 1e-10 {
		t.Errorf("expected length 100, got %v", ms[0].Length)
	}

	if surface.count("ellipse") != 2 {
		t.Errorf("expected 2 endpoint markers, got %d", surface.count("ellipse"))
	}
	if !surface.has("line (0.0, 0.0) (0.0, 200.0) w2") {
		t.Errorf("expected measurement line, got %v", surface.ops)
	}
	if !surface.has(`text "100.00" (0.0, 100.0)`) {
		t.Errorf("expected length label at midpoint, got %v", surface.ops)
	}
}

func TestLengthIsIntervalTimesDistance(t *testing.T) {
	cases := []struct {
		calibration, value, length float64
	}{
		{100, 50, 200},
		{40, 1, 10},
		{250, 12.5, 75},
	}

	for _, c := range cases {
		s, _, _ := newTestSession(measurement.FormatLength(c.value))
		s.Toggle()
		drag(s, 10, 10, 10+c.calibration, 10)
		drag(s, 0, 0, c.length, 0)

		ms := s.Measurements()
		if len(ms) != 1 {
			t.Fatalf("expected 1 measurement, got %d", len(ms))
		}
		expected := c.value / c.calibration * c.length
		if math.Abs(ms[0].Length-expected) > 1e-9 {
			t.Errorf("D=%v V=%v L=%v: expected %v, got %v", c.calibration, c.value, c.length, expected, ms[0].Length)
		}
	}
}

func TestCancelDiscardsCurrent(t *testing.T) {
	s, surface, _ := newTestSession("10")
	s.Toggle()
	drag(s, 0, 0, 10, 0)
	drag(s, 0, 0, 5, 0)

	// Empty answer queue cancels the next prompt
	drag(s, 0, 0, 100, 0)

	if s.Current() != nil {
		t.Error("cancel should discard the current measurement")
	}
	if s.Prompting() {
		t.Error("cancel should leave the prompt state")
	}
	if len(s.Measurements()) != 1 {
		t.Errorf("cancel must not change history, got %d measurements", len(s.Measurements()))
	}
	if surface.count("ellipse") != 2 {
		t.Errorf("expected redraw with the stored measurement, got %v", surface.ops)
	}
}

func TestInvalidInputReprompts(t *testing.T) {
	s, _, prompter := newTestSession("abc", "", "-4", "0", "25")
	s.Toggle()
	drag(s, 0, 0, 0, 50)

	if prompter.asked != 5 {
		t.Errorf("expected 5 prompts, got %d", prompter.asked)
	}
	cur := s.Current()
	if cur == nil || cur.Interval != 0.5 {
		t.Fatalf("expected interval 0.5 after reprompting, got %+v", cur)
	}
}

func TestOverflowingIntervalReprompts(t *testing.T) {
	s, _, prompter := newTestSession("1e308", "2")
	s.Toggle()
	drag(s, 0, 0, 0.5, 0)

	if prompter.asked != 2 {
		t.Errorf("expected 2 prompts, got %d", prompter.asked)
	}
	cur := s.Current()
	if cur == nil || cur.Interval != 4 {
		t.Fatalf("expected interval 4 after reprompting, got %+v", cur)
	}

	drag(s, 10, 10, 10, 10)
	ms := s.Measurements()
	if len(ms) != 1 || ms[0].Length != 0 {
		t.Fatalf("expected one zero-length measurement, got %+v", ms)
	}
	if math.IsNaN(ms[0].Length) || math.IsInf(ms[0].Interval, 0) {
		t.Errorf("non-finite values stored: %+v", ms[0])
	}
}

func TestZeroDistanceCalibration(t *testing.T) {
	s, surface, prompter := newTestSession("50")
	s.Toggle()
	frames := surface.frames

	drag(s, 30, 30, 30, 30)

	if prompter.asked != 0 {
		t.Errorf("zero-length calibration must not prompt, asked %d times", prompter.asked)
	}
	if s.Current() != nil {
		t.Error("zero-length calibration must discard the measurement")
	}
	if surface.frames <= frames {
		t.Error("zero-length calibration should redraw")
	}

	// The next drag starts a fresh calibration
	drag(s, 0, 0, 100, 0)
	if cur := s.Current(); cur == nil || cur.Interval != 0.5 {
		t.Errorf("expected a fresh calibration, got %+v", cur)
	}
}

func TestPendingPromptBlocksPointer(t *testing.T) {
	s, _, prompter := newTestSession()
	prompter.hold = true
	s.Toggle()

	drag(s, 0, 0, 100, 0)
	if !s.Prompting() {
		t.Fatal("expected session to wait for the prompt")
	}

	// Input while the prompt is open is ignored
	drag(s, 5, 5, 60, 60)
	if cur := s.Current(); cur == nil || cur.P1 != nil || cur.IsCalibrated() {
		t.Errorf("pointer input during prompt changed state: %+v", cur)
	}

	prompter.pending("20", true)
	if s.Prompting() {
		t.Error("resolved prompt should leave the prompt state")
	}
	if cur := s.Current(); cur == nil || cur.Interval != 0.2 {
		t.Errorf("expected interval 0.2, got %+v", cur)
	}
}

func TestPendingPromptInvalidThenCancel(t *testing.T) {
	s, _, prompter := newTestSession()
	prompter.hold = true
	s.Toggle()
	drag(s, 0, 0, 100, 0)

	prompter.pending("twelve", true)
	if !s.Prompting() || prompter.asked != 2 {
		t.Fatalf("expected a second prompt, asked %d", prompter.asked)
	}

	prompter.pending("", false)
	if s.Prompting() || s.Current() != nil {
		t.Error("cancel should discard the measurement")
	}
}

func TestToggleKeepsCurrent(t *testing.T) {
	s, surface, _ := newTestSession("50")
	s.Toggle()
	drag(s, 0, 0, 100, 0)
	s.PointerDown(Pointer(0, 0))

	s.Toggle()
	frames := surface.frames
	s.PointerMove(Pointer(0, 10))
	if surface.frames != frames {
		t.Error("hidden overlay must not render on pointer move")
	}
	if s.Current() == nil {
		t.Fatal("hiding must not discard the current measurement")
	}

	s.Toggle()
	if surface.count("line") != 1 {
		t.Errorf("expected guide line after showing again, got %v", surface.ops)
	}

	s.PointerDown(Pointer(0, 0))
	s.PointerUp(Pointer(0, 40))
	if ms := s.Measurements(); len(ms) != 1 || ms[0].Length != 20 {
		t.Errorf("expected one measurement of length 20, got %+v", ms)
	}
}

func TestCompletedMeasurementsAccumulate(t *testing.T) {
	s, surface, _ := newTestSession("1", "2", "3")
	s.Toggle()

	for i := 0; i < 3; i++ {
		drag(s, 0, 0, 10, 0)
		drag(s, 0, 0, 10, 0)
	}

	ms := s.Measurements()
	if len(ms) != 3 {
		t.Fatalf("expected 3 measurements, got %d", len(ms))
	}
	for i, m := range ms {
		if expected := float64(i + 1); math.Abs(m.Length-expected) > 1e-10 {
			t.Errorf("measurement %d: expected %v, got %v", i, expected, m.Length)
		}
	}

	// Mutating returned copies leaves the session alone
	ms[0].Length = 42
	if s.Measurements()[0].Length == 42 {
		t.Error("Measurements exposed internal state")
	}

	if surface.count("ellipse") != 6 {
		t.Errorf("expected markers for every measurement, got %d", surface.count("ellipse"))
	}
}

func TestMoveRendersOnlyWhileMeasuring(t *testing.T) {
	s, surface, _ := newTestSession()
	s.Toggle()
	frames := surface.frames

	s.PointerMove(Pointer(10, 10))
	if surface.frames != frames {
		t.Error("idle pointer move should not render")
	}
	if s.Mouse() != Pointer(10, 10).Position {
		t.Errorf("pointer position not tracked: %v", s.Mouse())
	}

	s.PointerDown(Pointer(10, 10))
	s.PointerMove(Pointer(20, 20))
	if surface.frames != frames+1 {
		t.Errorf("expected one render while measuring, got %d", surface.frames-frames)
	}
}

func TestStrayReleaseAfterCalibration(t *testing.T) {
	s, _, _ := newTestSession("50")
	s.Toggle()
	drag(s, 0, 0, 100, 0)

	s.PointerUp(Pointer(40, 40))

	cur := s.Current()
	if cur == nil || cur.Phase() != measurement.Calibrated {
		t.Errorf("stray release should leave the calibrated measurement alone, got %+v", cur)
	}
	if len(s.Measurements()) != 0 {
		t.Error("stray release must not complete a measurement")
	}
}

func TestResizeRendersWhenVisible(t *testing.T) {
	s, surface, _ := newTestSession()

	s.Resize()
	if surface.frames != 0 {
		t.Error("resize while hidden should not render")
	}

	s.Toggle()
	surface.width = 1024
	s.Resize()
	if surface.frames != 2 {
		t.Errorf("expected a render on resize, got %d frames", surface.frames)
	}
	if !surface.has("fillrect {262 20 500 100}") {
		t.Errorf("panel should follow the new width, got %v", surface.ops)
	}
}
