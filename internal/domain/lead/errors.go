package lead

import "errors"

var (
	// ErrInvalidPhone indicates the submitted phone is missing or too short.
	ErrInvalidPhone = errors.New("invalid phone")
	// ErrLeadNotFound indicates the lead doesn't exist.
	ErrLeadNotFound = errors.New("lead not found")
)
