package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; use errors.As for the details.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("task conflict")
	ErrNotFound   = errors.New("task not found")
)

// Validation reasons, wrapped by ValidationError.
var (
	ErrEmptyDescription     = errors.New("description is empty")
	ErrInvalidTime          = errors.New("time must be HH:MM in 24-hour format")
	ErrInvalidRange         = errors.New("start must be before end")
	ErrInvalidPriority      = errors.New("priority must be one of Low, Medium, High")
	ErrDuplicateDescription = errors.New("a task with this description already exists")
)

type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type ConflictError struct {
	Attempted Task
	Existing  Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task %q (%s - %s) conflicts with existing task %q (%s - %s)",
		e.Attempted.description, e.Attempted.start, e.Attempted.end,
		e.Existing.description, e.Existing.start, e.Existing.end)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type NotFoundError struct {
	Description string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.Description)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
