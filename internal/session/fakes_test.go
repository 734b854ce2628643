package session

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/philipparndt/gocalipers/pkg/geometry"
)

// recordingSurface records draw calls of the last frame
type recordingSurface struct {
	width, height float64
	visible       bool
	ops           []string
	frames        int
	sizes         int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{width: 800, height: 600}
}

func (r *recordingSurface) Viewport() (float64, float64) { return r.width, r.height }

func (r *recordingSurface) SetSize(w, h float64) {
	r.width, r.height = w, h
	r.sizes++
}

func (r *recordingSurface) Clear() { r.ops = nil }

func (r *recordingSurface) Line(from, to geometry.Point, _ color.Color, width float64) {
	r.ops = append(r.ops, fmt.Sprintf("line %v %v w%v", from, to, width))
}

func (r *recordingSurface) FillEllipse(c geometry.Point, rx, ry float64, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("ellipse %v %vx%v", c, rx, ry))
}

func (r *recordingSurface) FillRect(rect geometry.Rect, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("fillrect %v", rect))
}

func (r *recordingSurface) StrokeRect(rect geometry.Rect, _ color.Color, _ float64) {
	r.ops = append(r.ops, fmt.Sprintf("strokerect %v", rect))
}

func (r *recordingSurface) Text(s string, at geometry.Point, _ color.Color, _ float64) {
	r.ops = append(r.ops, fmt.Sprintf("text %q %v", s, at))
}

func (r *recordingSurface) Visible() bool { return r.visible }

func (r *recordingSurface) SetVisible(v bool) { r.visible = v }

func (r *recordingSurface) Flush() { r.frames++ }

// count returns the number of ops in the last frame starting with prefix
func (r *recordingSurface) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func (r *recordingSurface) has(op string) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}

// scriptedPrompter answers prompts from a queue; an empty queue cancels
type scriptedPrompter struct {
	answers []string
	asked   int
	// hold keeps the resolver in pending instead of answering
	hold     bool
	pending  func(string, bool)
	messages []string
}

func (p *scriptedPrompter) Prompt(message, defaultText string, resolve func(string, bool)) {
	p.asked++
	p.messages = append(p.messages, message+"|"+defaultText)
	if p.hold {
		p.pending = resolve
		return
	}
	if len(p.answers) == 0 {
		resolve("", false)
		return
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	resolve(answer, true)
}
