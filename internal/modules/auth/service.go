package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hoteldash/internal/session"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type attempts struct {
	failed      int
	lockedUntil time.Time
}

type Service struct {
	authn  Authenticator
	store  session.Store
	jwt    jwtService
	now    func() time.Time
	mu     sync.Mutex
	failed map[string]*attempts
}

func NewService(authn Authenticator, store session.Store, jwt jwtService) *Service {
	return &Service{
		authn:  authn,
		store:  store,
		jwt:    jwt,
		now:    time.Now,
		failed: make(map[string]*attempts),
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if s.locked(username) {
		return nil, ErrAccountLocked
	}

	id, err := s.authn.Authenticate(ctx, username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) && s.recordFailure(username) {
			log.Warn().Str("username", username).Msg("login locked after repeated failures")
			return nil, ErrAccountLocked
		}
		return nil, err
	}
	s.reset(username)

	if id.Username == "" {
		id.Username = username
	}
	sess := session.New(id.UserID, id.Username, id.Role, id.UpstreamToken, s.jwt.TTL())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.jwt.GenerateToken(sess.ID, sess.Username, sess.Role)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	log.Info().Str("username", sess.Username).Str("role", sess.Role).Msg("user logged in")
	return &LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      publicUser(sess),
	}, nil
}

func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Info().Str("username", sess.Username).Msg("user logged out")
	return nil
}

func (s *Service) Me(sess *session.Session) *MeResponse {
	return &MeResponse{
		User:      publicUser(sess),
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}
}

func publicUser(sess *session.Session) UserPublic {
	return UserPublic{ID: sess.UserID, Username: sess.Username, Role: sess.Role}
}

func (s *Service) locked(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.failed[username]
	return ok && a.lockedUntil.After(s.now())
}

// recordFailure counts a bad password and reports whether the account is now locked.
func (s *Service) recordFailure(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.failed[username]
	if !ok {
		a = &attempts{}
		s.failed[username] = a
	}
	a.failed++
	if a.failed >= maxFailedLoginAttempts {
		a.failed = 0
		a.lockedUntil = s.now().Add(lockoutDuration)
		return true
	}
	return false
}

func (s *Service) reset(username string) {
	s.mu.Lock()
	delete(s.failed, username)
	s.mu.Unlock()
}
