package auth

import "errors"

var (
	ErrInvalidCredentials            = errors.New("invalid credentials")
	ErrEmailAlreadyExists            = errors.New("email already exists")
	ErrAccountLocked                 = errors.New("account locked")
	ErrEmailNotVerified              = errors.New("email not verified")
	ErrInvalidRefreshToken           = errors.New("invalid refresh token")
	ErrRefreshTokenReused            = errors.New("refresh token reused")
	ErrInvalidVerificationCode       = errors.New("invalid verification code")
	ErrInvalidVerificationCodeFormat = errors.New("verification code must be 6 digits")
	ErrTooManyAttempts               = errors.New("too many verification attempts")
	ErrRateLimitExceeded             = errors.New("resend cooldown not elapsed")
	ErrInvalidProfileData            = errors.New("invalid profile data")
)
