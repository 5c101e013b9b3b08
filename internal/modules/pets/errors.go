package pets

import "errors"

var (
	ErrNotFound   = errors.New("pet not found")
	ErrNotOwner   = errors.New("pet belongs to another user")
	ErrValidation = errors.New("invalid pet data")
)
