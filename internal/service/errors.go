package service

import (
	"errors"
	"fmt"
)

var (
	// ErrExpired is returned when undo is attempted after the window closed.
	ErrExpired = errors.New("undo window expired")

	// ErrAlreadyConsumed is returned when a token has already been used to undo.
	ErrAlreadyConsumed = errors.New("undo already applied")
)

// NotFoundError reports an operation on an absent task or token.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ExpiredError wraps ErrExpired with the offending token.
type ExpiredError struct {
	Token UndoToken
}

func (e ExpiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExpired, e.Token.Short())
}

func (e ExpiredError) Unwrap() error { return ErrExpired }

// AlreadyConsumedError wraps ErrAlreadyConsumed with the offending token.
type AlreadyConsumedError struct {
	Token UndoToken
}

func (e AlreadyConsumedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyConsumed, e.Token.Short())
}

func (e AlreadyConsumedError) Unwrap() error { return ErrAlreadyConsumed }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
