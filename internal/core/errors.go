package core

import (
	"errors"
	"fmt"
)

// ErrInvalidRoot is matched by every error Start returns for a bad root
var ErrInvalidRoot = errors.New("invalid root")

// ErrNotDirectory is the cause when the root exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// RootError describes why a scan could not start
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid root %q: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrInvalidRoot and the underlying cause to errors.Is
func (e *RootError) Unwrap() []error {
	return []error{ErrInvalidRoot, e.Err}
}
