package domain

import "errors"

// Validation failures returned by the engine. All are permanent: the caller
// must correct its inputs and reissue, nothing is retriable. A failed call
// leaves every store exactly as it was.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSide         = errors.New("invalid side")
	ErrSameUser            = errors.New("same user")
)
