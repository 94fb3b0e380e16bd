package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
	ErrNotAuthenticated   = fmt.Errorf("no authenticated user")
	ErrEmptyContent       = fmt.Errorf("message content is empty")
	ErrSameParticipant    = fmt.Errorf("conversation needs two distinct participants")
	ErrInvalidRating      = fmt.Errorf("rating must be between 1 and 5")
	ErrMissingQuality     = fmt.Errorf("connection quality is required")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrNotFound           = fmt.Errorf("record not found")
)
