package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/terminal"
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
}

// App runs a widget tree against a terminal backend.
// The backend is acquired when Run starts and released when it returns,
// whatever the reason.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message

	running  atomic.Bool
	dirty    bool
	renderMu sync.Mutex
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	return &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
	}
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	return a.screen
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop. Messages are dropped when the
// queue is full.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()

	a.renderMu.Lock()
	a.screen = NewScreen(w, h)
	a.screen.Buffer().MarkAllDirty()
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	a.renderMu.Unlock()

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running.Store(true)
	a.dirty = true

	go a.pollEvents()

	for a.running.Load() {
		if a.dirty {
			a.render()
			a.dirty = false
		}

		select {
		case <-ctx.Done():
			a.running.Store(false)
			return ctx.Err()
		case msg := <-a.messages:
			if a.update(a, msg) {
				a.dirty = true
			}
		}
	}

	return nil
}

// DefaultUpdate handles resize messages and routes everything else to the
// root widget.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		app.backend.Sync()
		return true
	default:
		result := app.screen.HandleMessage(msg)
		dirty := result.Handled
		for _, cmd := range result.Commands {
			if app.HandleCommand(cmd) {
				dirty = true
			}
		}
		return dirty
	}
}

// HandleCommand applies a widget command. It reports whether a render is
// needed.
func (a *App) HandleCommand(cmd Command) bool {
	switch cmd.(type) {
	case Quit:
		a.running.Store(false)
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{Key: e.Key, Rune: e.Rune, Ctrl: e.Ctrl})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

func (a *App) render() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	if a.screen == nil {
		return
	}

	a.screen.Render()
	buf := a.screen.Buffer()

	if buf.IsDirty() {
		buf.ForEachDirtyCell(func(x, y int, cell Cell) {
			// Trailing halves of wide glyphs are drawn by the glyph itself.
			if cell.Rune == 0 {
				return
			}
			a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
		})
		buf.ClearDirty()
	}

	a.backend.Show()
}
