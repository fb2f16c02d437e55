package domain

import (
	"errors"
	"strings"
)

type ValidationCode string

const (
	MissingFields ValidationCode = "missingFields"
	InvalidNumber ValidationCode = "invalidNumber"
	InvalidField  ValidationCode = "invalidField"
)

var (
	ErrNotFound      = errors.New("player not found")
	ErrDuplicateName = errors.New("player with the same name already exists")
)

// ValidationError reports request input that can't be stored.
type ValidationError struct {
	Code   ValidationCode
	Fields []string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case MissingFields:
		return "missing fields: " + strings.Join(e.Fields, ", ")
	case InvalidNumber:
		return strings.Join(e.Fields, ", ") + " must be a number"
	default:
		return "invalid fields: " + strings.Join(e.Fields, ", ")
	}
}

func NewValidationError(code ValidationCode, fields ...string) *ValidationError {
	return &ValidationError{Code: code, Fields: fields}
}

type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return "player named " + e.Name + " already exists"
}

func (e *ConflictError) Unwrap() error {
	return ErrDuplicateName
}

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
