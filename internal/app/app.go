package app

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/philipparndt/gocalipers/internal/config"
	"github.com/philipparndt/gocalipers/internal/overlay"
	"github.com/philipparndt/gocalipers/internal/session"
	"github.com/philipparndt/gocalipers/pkg/watcher"
)

const (
	appID       = "io.github.philipparndt.gocalipers"
	windowTitle = "GoCalipers"
)

// ToggleShortcut shows and hides the overlay
var ToggleShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierAlt}

// App wires a measurement session into a fyne window
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Backdrop BackdropState

	fyneApp fyne.App
	window  fyne.Window
	overlay *overlay.Overlay
	session *session.Session
}

// New creates an application from the loaded configuration
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{Config: cfg, Logger: logger}
}

// Run opens the window and blocks until it is closed.
// backdropPath may be empty to measure over a blank window.
func (a *App) Run(backdropPath string) error {
	a.fyneApp = fyneapp.NewWithID(appID)
	a.window = a.fyneApp.NewWindow(windowTitle)
	a.window.SetPadded(false)

	a.setup(&dialogPrompter{window: a.window})

	if backdropPath != "" {
		if err := a.loadBackdrop(backdropPath); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if fw, err := a.watchBackdrop(ctx, backdropPath); err != nil {
			a.Logger.Warn("failed to set up backdrop watching, auto-reload will not be available", "error", err)
		} else {
			defer fw.Close()
		}
	}

	a.window.Resize(fyne.NewSize(a.Config.Window.Width, a.Config.Window.Height))
	a.window.SetFullScreen(a.Config.Window.Fullscreen)

	a.Logger.Info("overlay ready, press Alt+C to start measuring", "backdrop", backdropPath)
	a.window.ShowAndRun()
	a.Logger.Info("window closed", "measurements", len(a.session.Measurements()))
	return nil
}

// setup builds the overlay, the session and the window content
func (a *App) setup(prompter session.Prompter) {
	a.overlay = overlay.New()
	a.session = session.New(a.overlay, prompter, a.Config.SessionOptions(a.Logger))
	a.overlay.SetHandler(a.session)

	a.Backdrop.image = newBackdropImage()
	a.window.SetContent(container.NewStack(a.Backdrop.image, a.overlay))

	c := a.window.Canvas()
	c.AddShortcut(ToggleShortcut, func(fyne.Shortcut) {
		a.session.KeyUp(session.KeyEvent{Code: session.KeyC, Modifiers: session.Modifiers{Alt: true}})
	})
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		a.session.KeyUp(session.KeyEvent{Code: session.KeyCode(ev.Name)})
	})
}

// Session returns the measurement session, nil before Run
func (a *App) Session() *session.Session {
	return a.session
}

func (a *App) watchBackdrop(ctx context.Context, path string) (*watcher.FileWatcher, error) {
	fw, err := watcher.NewFileWatcher(a.Config.Watch.Debounce, a.Logger)
	if err != nil {
		return nil, err
	}
	if err := fw.Watch(path, func(changed string) {
		fyne.Do(func() {
			if err := a.loadBackdrop(changed); err != nil {
				a.Logger.Warn("failed to reload backdrop", "path", changed, "error", err)
			}
		})
	}); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch backdrop: %w", err)
	}
	fw.Start(ctx)
	return fw, nil
}
