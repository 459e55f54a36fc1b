package otp

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited    = errors.New("rate limited")
	ErrDeliveryFailed = errors.New("failed to deliver verification code")
	ErrInvalidCode    = errors.New("invalid verification code")
	ErrExhausted      = errors.New("no verification attempts remaining")
)

// RateLimitedError carries the concrete wait the caller surfaces to the user.
type RateLimitedError struct {
	RetryAfter int // seconds
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests; retry in %d seconds", e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// InvalidCodeError reports a mismatch plus the remaining attempt budget.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code; %d attempts remaining", e.Remaining)
}

func (e *InvalidCodeError) Unwrap() error {
	return ErrInvalidCode
}
