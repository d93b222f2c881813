package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is wrapped by every *TransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// ValidationError reports user input that is missing or inconsistent.
// Nothing is mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an action requested in a state that does not permit it.
type TransitionError struct {
	Entity string
	State  string
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s not permitted in state %q", e.Entity, e.Action, e.State)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
