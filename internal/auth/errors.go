package auth

import "errors"

var (
	// ErrBadCredentials indicates the login username/password pair is wrong.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrNotConfigured indicates the server has no admin credential pair or
	// signing secret configured; login cannot succeed for anyone.
	ErrNotConfigured = errors.New("admin auth not configured")
	// ErrInvalidToken covers every verification failure: unknown, malformed,
	// expired or mis-signed tokens are deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid token")
)
