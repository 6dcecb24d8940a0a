package auth

import (
	"context"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/internal/source/rest"
)

// Identity is what a successful credential check yields.
type Identity struct {
	UserID        string
	Username      string
	Role          string
	UpstreamToken string
}

// Authenticator checks a username and password.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

// UpstreamLogin exchanges credentials with the hotel backend.
type UpstreamLogin interface {
	Login(ctx context.Context, username, password string) (*rest.LoginResult, error)
}

// StaffFinder looks up local dashboard accounts.
type StaffFinder interface {
	GetByUsername(ctx context.Context, username string) (*domain.Staff, error)
}

type jwtService interface {
	GenerateToken(sessionID, username, role string) (string, error)
	TTL() time.Duration
}
