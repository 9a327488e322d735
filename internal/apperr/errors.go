// Package apperr defines the error kinds shared by the services and the HTTP
// layer: validation failures (400), missing resources (404) and persistence
// failures (500).
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown book or a missing content segment.
// Context is merged into the error response body.
type NotFoundError struct {
	Message string
	Context map[string]any
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// StorageError wraps a failure returned by the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Validation returns a *ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// NotFound returns a *NotFoundError with optional response context.
func NotFound(message string, context map[string]any) error {
	return &NotFoundError{Message: message, Context: context}
}

// Storage wraps err as a *StorageError. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
