package apperrors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidFormat = errors.New("invalid export format")
	ErrInvalidInput  = errors.New("invalid input")
)
