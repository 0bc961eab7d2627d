package server

import (
	"errors"
	"fmt"
)

// The three failure classes the match surface can report. Handlers map
// them to status codes; everything else is a 500.
var (
	errConfiguration     = errors.New("invalid session configuration")
	errInvalidTransition = errors.New("action not allowed in current state")
	errInvalidInput      = errors.New("invalid input")
)

var (
	errGameNotFound    = errors.New("game not found")
	errSessionNotFound = errors.New("session not found")
	errMatchNotFound   = errors.New("match not found")
)

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errConfiguration, fmt.Sprintf(format, args...))
}
