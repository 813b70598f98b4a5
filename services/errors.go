package services

import "errors"

// Sentinel errors returned by the domain services. Controllers map these to
// HTTP status codes; anything else is treated as a store failure the caller
// may retry manually.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrValidation       = errors.New("invalid input")
	ErrForbidden        = errors.New("not allowed")
	ErrNotAuthenticated = errors.New("not authenticated")
)
