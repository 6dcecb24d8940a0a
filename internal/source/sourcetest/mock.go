// Package sourcetest provides a testify mock of source.Source for handler and service tests.
package sourcetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListReservations(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Reservation, error) {
	args := m.Called(ctx, sess, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockSource) ListRooms(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Room, error) {
	args := m.Called(ctx, sess, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockSource) ListTasks(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.HousekeepingTask, error) {
	args := m.Called(ctx, sess, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HousekeepingTask), args.Error(1)
}

func (m *MockSource) ListPayments(ctx context.Context, sess *session.Session, f source.Filter) ([]domain.Payment, error) {
	args := m.Called(ctx, sess, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
