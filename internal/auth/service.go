// Package auth issues and verifies admin bearer credentials. Two strategies
// implement the same pair of contracts: an in-memory token set and stateless
// signed tokens. A deployment picks one at startup via configuration.
package auth

// Issuer mints a new bearer token for an authenticated admin.
type Issuer interface {
	Issue() (string, error)
}

// Verifier checks a presented bearer token. Any failure returns
// ErrInvalidToken; callers must not learn why verification failed.
type Verifier interface {
	Verify(token string) error
}

// Service verifies the fixed admin credential pair and issues tokens.
type Service struct {
	username string
	password string
	issuer   Issuer
}

// NewService creates a new auth service. The credential pair comes from
// configuration; empty values mean the deployment is misconfigured and every
// login fails with ErrNotConfigured.
func NewService(username, password string, issuer Issuer) *Service {
	return &Service{
		username: username,
		password: password,
		issuer:   issuer,
	}
}

// Login compares the supplied credentials against the configured pair
// (exact, case-sensitive match) and returns a fresh bearer token on success.
func (s *Service) Login(username, password string) (string, error) {
	if s.username == "" || s.password == "" {
		return "", ErrNotConfigured
	}
	if username != s.username || password != s.password {
		return "", ErrBadCredentials
	}
	return s.issuer.Issue()
}
