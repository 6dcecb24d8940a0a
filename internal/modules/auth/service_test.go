package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/jwt"
	"hoteldash/internal/repository"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
	"hoteldash/internal/source/rest"
)

type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) Login(ctx context.Context, username, password string) (*rest.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.LoginResult), args.Error(1)
}

type mockStaff struct {
	mock.Mock
}

func (m *mockStaff) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func activeStaff(t *testing.T, password string) *domain.Staff {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.Staff{ID: 7, Username: "rina", PasswordHash: hash, Name: "Rina", Role: domain.RoleManager, IsActive: true}
}

func TestLogin_Upstream(t *testing.T) {
	upstream := new(mockUpstream)
	upstream.On("Login", mock.Anything, "frontdesk", "secret").
		Return(&rest.LoginResult{Token: "backend-token", UserID: "42", Username: "frontdesk", Role: "front_desk"}, nil)

	store := session.NewMemoryStore()
	jwtService := jwt.New("test-secret", time.Hour)
	svc := NewService(NewUpstreamAuthenticator(upstream), store, jwtService)

	res, err := svc.Login(context.Background(), LoginRequest{Username: " FrontDesk ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, UserPublic{ID: "42", Username: "frontdesk", Role: "front_desk"}, res.User)

	claims, err := jwtService.ValidateToken(res.Token)
	require.NoError(t, err)
	sess, err := store.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", sess.UpstreamToken)
	assert.Equal(t, res.ExpiresAt, sess.ExpiresAt)
}

func TestLogin_UpstreamRejects(t *testing.T) {
	upstream := new(mockUpstream)
	upstream.On("Login", mock.Anything, "frontdesk", "bad").Return(nil, source.ErrUnauthorized)

	svc := NewService(NewUpstreamAuthenticator(upstream), session.NewMemoryStore(), jwt.New("s", time.Hour))
	_, err := svc.Login(context.Background(), LoginRequest{Username: "frontdesk", Password: "bad"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UpstreamUnavailable(t *testing.T) {
	upstream := new(mockUpstream)
	upstream.On("Login", mock.Anything, "frontdesk", "secret").Return(nil, source.ErrUpstream)

	svc := NewService(NewUpstreamAuthenticator(upstream), session.NewMemoryStore(), jwt.New("s", time.Hour))
	_, err := svc.Login(context.Background(), LoginRequest{Username: "frontdesk", Password: "secret"})
	assert.ErrorIs(t, err, source.ErrUpstream)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogin_Local(t *testing.T) {
	staff := new(mockStaff)
	staff.On("GetByUsername", mock.Anything, "rina").Return(activeStaff(t, "hunter22"), nil)

	svc := NewService(NewLocalAuthenticator(staff), session.NewMemoryStore(), jwt.New("s", time.Hour))
	res, err := svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, UserPublic{ID: "7", Username: "rina", Role: "manager"}, res.User)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LocalUnknownAndDisabled(t *testing.T) {
	disabled := activeStaff(t, "pw")
	disabled.IsActive = false

	staff := new(mockStaff)
	staff.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrStaffNotFound)
	staff.On("GetByUsername", mock.Anything, "rina").Return(disabled, nil)

	svc := NewService(NewLocalAuthenticator(staff), session.NewMemoryStore(), jwt.New("s", time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	staff := new(mockStaff)
	staff.On("GetByUsername", mock.Anything, "rina").Return(activeStaff(t, "right"), nil)

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := NewService(NewLocalAuthenticator(staff), session.NewMemoryStore(), jwt.New("s", time.Hour))
	svc.now = func() time.Time { return now }

	for i := 1; i < maxFailedLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "wrong"})
	require.ErrorIs(t, err, ErrAccountLocked)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "right"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	now = now.Add(lockoutDuration + time.Second)
	_, err = svc.Login(context.Background(), LoginRequest{Username: "rina", Password: "right"})
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	store := session.NewMemoryStore()
	sess := session.New("1", "rina", "manager", "", time.Hour)
	require.NoError(t, store.Save(context.Background(), sess))

	svc := NewService(NewLocalAuthenticator(new(mockStaff)), store, jwt.New("s", time.Hour))
	require.NoError(t, svc.Logout(context.Background(), sess))

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, svc.Logout(context.Background(), nil))
}
