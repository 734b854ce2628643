package replay

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/philipparndt/gocalipers/internal/backdrop"
	"github.com/philipparndt/gocalipers/internal/raster"
	"github.com/philipparndt/gocalipers/internal/session"
)

// QueuePrompter answers prompts from a queue of scripted answers.
// An empty queue behaves like the user pressing cancel.
type QueuePrompter struct {
	answers []string
	asked   int
}

// Enqueue adds answers for upcoming prompts
func (p *QueuePrompter) Enqueue(answers ...string) {
	p.answers = append(p.answers, answers...)
}

// Asked returns how many prompts were shown
func (p *QueuePrompter) Asked() int {
	return p.asked
}

// Remaining returns the number of unused answers
func (p *QueuePrompter) Remaining() int {
	return len(p.answers)
}

// Prompt resolves immediately with the next queued answer
func (p *QueuePrompter) Prompt(_, _ string, resolve func(string, bool)) {
	p.asked++
	if len(p.answers) == 0 {
		resolve("", false)
		return
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	resolve(answer, true)
}

// NewSurface creates a raster surface sized to the script's viewport.
// A relative backdrop path is resolved against baseDir.
func NewSurface(s *Script, baseDir string) (*raster.Surface, error) {
	surface := raster.New(s.Viewport.Width, s.Viewport.Height)
	if s.Backdrop == "" {
		return surface, nil
	}

	path := s.Backdrop
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	img, err := backdrop.Load(path)
	if err != nil {
		return nil, err
	}
	surface.SetBackdrop(img)
	return surface, nil
}

// viewportSetter is implemented by surfaces whose viewport a script can resize
type viewportSetter interface {
	SetViewport(width, height int)
}

// Result is the outcome of a replay
type Result struct {
	Session  *session.Session
	Prompter *QueuePrompter
}

// Run plays every event of the script against a new session on surface
func Run(s *Script, surface session.Surface, opts session.Options) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prompter := &QueuePrompter{}
	sess := session.New(surface, prompter, opts)

	for i, ev := range s.Events {
		prompter.Enqueue(ev.Answers...)

		switch {
		case ev.Key != "":
			key, err := ParseKey(ev.Key)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			sess.KeyUp(key)
		case ev.Down != nil:
			sess.PointerDown(pointer(ev.Down))
		case ev.Move != nil:
			sess.PointerMove(pointer(ev.Move))
		case ev.Up != nil:
			sess.PointerUp(pointer(ev.Up))
		case ev.Resize != nil:
			vs, ok := surface.(viewportSetter)
			if !ok {
				return nil, fmt.Errorf("event %d: surface cannot be resized", i)
			}
			vs.SetViewport(int(ev.Resize[0]), int(ev.Resize[1]))
			sess.Resize()
		}
	}

	if n := prompter.Remaining(); n > 0 {
		logger.Warn("replay finished with unused answers", "count", n)
	}

	// Leave a final frame of the end state
	if sess.Visible() {
		sess.Render()
	}

	return &Result{Session: sess, Prompter: prompter}, nil
}
