package errors

import "errors"

var (
	ErrAlreadyRegistered = errors.New("principal already registered")
	ErrNotRegistered     = errors.New("principal not registered")
	ErrWrongRole         = errors.New("wrong role for operation")
	ErrInvalidRoleChange = errors.New("invalid role change")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidPrice      = errors.New("price must be non-negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrNoProducts        = errors.New("no products found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidState      = errors.New("invalid order state transition")
)
