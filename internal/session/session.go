// Package session holds the explicit upstream session passed to every entity fetch.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session binds a dashboard login to the credentials used against the hotel backend.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	UpstreamToken string    `json:"upstream_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func New(userID, username, role, upstreamToken string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		Username:      username,
		Role:          role,
		UpstreamToken: upstreamToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
}

// Service returns a non-persisted session for background work such as polling.
func Service(upstreamToken string) *Session {
	return &Session{
		ID:            "service",
		Username:      "service",
		Role:          "service",
		UpstreamToken: upstreamToken,
		CreatedAt:     time.Now(),
	}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
