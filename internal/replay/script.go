// Package replay drives a measurement session from a YAML script so that
// annotations can be rendered without a display.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/gocalipers/internal/session"
	"github.com/philipparndt/gocalipers/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Viewport is the size of the replayed surface
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Event is one scripted input. Exactly one of Key, Down, Up, Move or Resize
// is set.
// Answers are queued on the prompter before the event is applied.
type Event struct {
	Key     string      `yaml:"key,omitempty"`
	Down    *[2]float64 `yaml:"down,omitempty"`
	Up      *[2]float64 `yaml:"up,omitempty"`
	Move    *[2]float64 `yaml:"move,omitempty"`
	Resize  *[2]float64 `yaml:"resize,omitempty"`
	Answers []string    `yaml:"answers,omitempty"`
}

// Script is a recorded interaction
type Script struct {
	Viewport Viewport `yaml:"viewport"`
	Backdrop string   `yaml:"backdrop,omitempty"`
	Events   []Event  `yaml:"events"`
}

// Parse decodes and validates a script
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty replay script")
		}
		return nil, fmt.Errorf("failed to parse replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script from a file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay script: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the viewport and that every event has exactly one action
func (s *Script) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", s.Viewport.Width, s.Viewport.Height)
	}
	for i, ev := range s.Events {
		actions := 0
		if ev.Key != "" {
			actions++
			if _, err := ParseKey(ev.Key); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		}
		for _, p := range []*[2]float64{ev.Down, ev.Up, ev.Move, ev.Resize} {
			if p != nil {
				actions++
			}
		}
		if actions != 1 {
			return fmt.Errorf("event %d: expected exactly one of key, down, up, move, resize; got %d", i, actions)
		}
		if r := ev.Resize; r != nil && (r[0] < 1 || r[1] < 1) {
			return fmt.Errorf("event %d: invalid resize %vx%v", i, r[0], r[1])
		}
	}
	return nil
}

// ParseKey converts names like "alt+c" or "escape" into a key event
func ParseKey(name string) (session.KeyEvent, error) {
	var ev session.KeyEvent
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), "+")
	for i, part := range parts {
		if i < len(parts)-1 {
			switch part {
			case "alt":
				ev.Alt = true
			case "ctrl", "control":
				ev.Control = true
			case "shift":
				ev.Shift = true
			case "super", "cmd":
				ev.Super = true
			default:
				return ev, fmt.Errorf("unknown modifier %q in key %q", part, name)
			}
			continue
		}
		switch part {
		case "c":
			ev.Code = session.KeyC
		case "escape", "esc":
			ev.Code = session.KeyEscape
		case "":
			return ev, fmt.Errorf("missing key in %q", name)
		default:
			ev.Code = session.KeyCode(strings.ToUpper(part))
		}
	}
	return ev, nil
}

func pointer(p *[2]float64) session.PointerEvent {
	return session.PointerEvent{Position: geometry.NewPoint(p[0], p[1])}
}
