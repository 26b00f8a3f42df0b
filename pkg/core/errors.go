package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoEntries     = errors.New("no entries found")
	ErrNoSeeding     = errors.New("repository does not support seeding")
)

// StoreError reports a failure of the storage collaborator during Op.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// InputError reports a failure while reading user input.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
