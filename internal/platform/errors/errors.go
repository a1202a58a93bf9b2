package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInvalidEdit  = errors.New("invalid edit")
	ErrUnknownRange = errors.New("unknown range")
)
