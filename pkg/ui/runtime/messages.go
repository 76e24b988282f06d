package runtime

import "github.com/odvcencio/gridview/pkg/ui/terminal"

// Message represents an event flowing into the UI.
// Messages come from terminal input or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key  terminal.Key
	Rune rune
	Ctrl bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// CustomMsg carries an application-defined payload posted from another
// goroutine, such as a file watcher.
type CustomMsg struct {
	Value any
}

func (CustomMsg) isMessage() {}
