package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrMisconfigured     = errors.New("server misconfigured")
	ErrEmptyCompletion   = errors.New("empty completion response")
	ErrMalformedResponse = errors.New("malformed model response")
)
