package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters violate the API contract
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPayloadTooLarge is returned when the request body exceeds the configured size cap
	ErrPayloadTooLarge = errors.New("request body too large")

	// ErrRateLimited is returned when a client exceeds its request quota
	ErrRateLimited = errors.New("rate limit exceeded")
)
