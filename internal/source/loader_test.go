package source_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
	"hoteldash/internal/source/sourcetest"
)

func TestLoader_AllSucceed(t *testing.T) {
	src := new(sourcetest.MockSource)
	sess := session.Service("tok")

	src.On("ListReservations", mock.Anything, sess, source.Filter{}).
		Return([]domain.Reservation{{ID: "r1"}}, nil)
	src.On("ListRooms", mock.Anything, sess, source.Filter{}).
		Return([]domain.Room{{ID: "101"}, {ID: "102"}}, nil)

	snap, err := source.NewLoader(src).Load(context.Background(), sess, source.Request{
		Reservations: &source.Filter{},
		Rooms:        &source.Filter{},
	})
	require.NoError(t, err)

	assert.Len(t, snap.Reservations.Items, 1)
	assert.Len(t, snap.Rooms.Items, 2)
	assert.False(t, snap.Tasks.Requested())
	assert.Empty(t, snap.Degraded())
	src.AssertExpectations(t)
	src.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoader_FailureDegradesOnlyThatCollection(t *testing.T) {
	src := new(sourcetest.MockSource)
	sess := session.Service("tok")

	src.On("ListTasks", mock.Anything, sess, mock.Anything).
		Return(nil, fmt.Errorf("housekeeping: %w", source.ErrUpstream))
	src.On("ListPayments", mock.Anything, sess, mock.Anything).
		Return([]domain.Payment{{ID: "p1"}}, nil)

	snap, err := source.NewLoader(src).Load(context.Background(), sess, source.Request{
		Tasks:    &source.Filter{},
		Payments: &source.Filter{},
	})
	require.NoError(t, err)

	assert.True(t, snap.Tasks.Degraded)
	assert.Empty(t, snap.Tasks.Items)
	assert.NotNil(t, snap.Tasks.Items)
	assert.False(t, snap.Payments.Degraded)

	degraded := snap.Degraded()
	require.Len(t, degraded, 1)
	assert.Equal(t, source.EntityTasks, degraded[0].Source)
	assert.Contains(t, degraded[0].Reason, "upstream request failed")
}

func TestLoader_EmptyIsNotDegraded(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListRooms", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Room{}, nil)

	snap, err := source.NewLoader(src).Load(context.Background(), nil, source.Request{Rooms: &source.Filter{}})
	require.NoError(t, err)
	assert.False(t, snap.Rooms.Degraded)
	assert.Empty(t, snap.Rooms.Items)
}

func TestLoader_UnauthorizedIsReturned(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, source.ErrUnauthorized)
	src.On("ListRooms", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Room{}, nil).Maybe()

	_, err := source.NewLoader(src).Load(context.Background(), nil, source.Request{
		Reservations: &source.Filter{},
		Rooms:        &source.Filter{},
	})
	assert.True(t, errors.Is(err, source.ErrUnauthorized))
}
