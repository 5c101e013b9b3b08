package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotAvailable            = errors.New("slot not available")
	ErrOverbooking             = errors.New("overbooking constraint violation")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrPetNotOwned             = errors.New("pet does not belong to user")
	ErrTrainerNotFound         = errors.New("trainer not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
