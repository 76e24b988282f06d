package runtime

// Command represents an action/intent emitted by widgets.
// Commands bubble up from widgets to the app for handling.
type Command interface {
	isCommand()
}

// Quit signals the application should exit.
type Quit struct{}

func (Quit) isCommand() {}

// Refresh requests a full screen redraw.
type Refresh struct{}

func (Refresh) isCommand() {}
