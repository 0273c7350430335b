package engine

import "errors"

var (
	// ErrUnknownCommand is returned for input whose first word isn't a command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
	// ErrEntityNotFound is returned when no such character is near.
	ErrEntityNotFound = errors.New("no such character")
	// ErrItemNotFound is returned when an item isn't where the command needs it.
	ErrItemNotFound = errors.New("no such item")
	// ErrRefused is returned when an action is understood but not allowed.
	ErrRefused = errors.New("action refused")
	// ErrGameOver is returned for input after the story ended.
	ErrGameOver = errors.New("game over")
)

// CommandError pairs the reason a command was rejected with the line shown
// to the player.
type CommandError struct {
	Err error
	Msg string
}

func (e *CommandError) Error() string {
	return e.Err.Error() + ": " + e.Msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func reject(err error, msg string) error {
	return &CommandError{Err: err, Msg: msg}
}
