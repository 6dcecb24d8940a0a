package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"hoteldash/internal/repository"
	"hoteldash/internal/source"
)

type upstreamAuthenticator struct {
	client UpstreamLogin
}

// NewUpstreamAuthenticator delegates the credential check to the hotel backend and keeps its token.
func NewUpstreamAuthenticator(client UpstreamLogin) Authenticator {
	return &upstreamAuthenticator{client: client}
}

func (a *upstreamAuthenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, source.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("upstream login: %w", err)
	}
	return &Identity{
		UserID:        res.UserID,
		Username:      res.Username,
		Role:          res.Role,
		UpstreamToken: res.Token,
	}, nil
}

type localAuthenticator struct {
	staff StaffFinder
}

// NewLocalAuthenticator checks credentials against bcrypt hashes of local staff accounts.
func NewLocalAuthenticator(staff StaffFinder) Authenticator {
	return &localAuthenticator{staff: staff}
}

func (a *localAuthenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	member, err := a.staff.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Identity{
		UserID:   strconv.FormatInt(member.ID, 10),
		Username: member.Username,
		Role:     string(member.Role),
	}, nil
}

// HashPassword returns the bcrypt hash stored for local staff.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
