package errors

import "errors"

var (
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrUserUnknown  = errors.New("user unknown")
)
