package service

import (
	"ctchen222/Exercise-Tracker/internal/normalize"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a missing or malformed request field.
	ErrInvalidInput = normalize.ErrInvalidInput
	// ErrUnknownUser marks a reference to a user that does not exist.
	ErrUnknownUser = errors.New("unknown user")
	// ErrStore marks any persistence failure.
	ErrStore = errors.New("store error")
)

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
