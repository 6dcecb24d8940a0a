package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
	"hoteldash/internal/source/sourcetest"
)

func newTestService(src source.Source) *Service {
	svc := NewService(source.NewLoader(src), DefaultPolicy(), time.UTC)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestService_List_DegradesFailedSource(t *testing.T) {
	src := new(sourcetest.MockSource)
	sess := session.Service("tok")

	overdue := paidReservation("1", domain.ReservationConfirmed, daysFromToday(-1), daysFromToday(1))
	src.On("ListReservations", mock.Anything, sess, mock.Anything).Return([]domain.Reservation{overdue}, nil)
	src.On("ListTasks", mock.Anything, sess, mock.Anything).Return(nil, fmt.Errorf("timeout: %w", source.ErrUpstream))
	src.On("ListPayments", mock.Anything, sess, mock.Anything).Return([]domain.Payment{}, nil)

	res, err := newTestService(src).List(context.Background(), sess, FilterAll)
	require.NoError(t, err)

	require.Len(t, res.Notifications, 1)
	assert.Equal(t, domain.NotifCheckIn, res.Notifications[0].Type)
	require.Len(t, res.Degraded, 1)
	assert.Equal(t, source.EntityTasks, res.Degraded[0].Source)
	assert.Equal(t, testNow, res.GeneratedAt)
}

func TestService_List_OnlyFetchesWhatTheFilterNeeds(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListTasks", mock.Anything, mock.Anything, mock.MatchedBy(func(f source.Filter) bool {
		return len(f.Statuses) == 2 && f.Statuses[0] == "pending" && f.Statuses[1] == "in_progress"
	})).Return([]domain.HousekeepingTask{}, nil)

	_, err := newTestService(src).List(context.Background(), nil, FilterMaintenance)
	require.NoError(t, err)

	src.AssertExpectations(t)
	src.AssertNotCalled(t, "ListReservations", mock.Anything, mock.Anything, mock.Anything)
	src.AssertNotCalled(t, "ListPayments", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_List_PaymentsUseLookbackWindow(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)
	src.On("ListPayments", mock.Anything, mock.Anything, mock.MatchedBy(func(f source.Filter) bool {
		return f.From.Equal(testNow.Add(-7*24*time.Hour)) && f.To.Equal(testNow)
	})).Return([]domain.Payment{
		{ID: "p1", Amount: decimal.RequireFromString("125000.4"), Status: domain.PaymentFailed, CreatedAt: testNow.Add(-time.Hour)},
	}, nil)

	res, err := newTestService(src).List(context.Background(), nil, FilterPayments)
	require.NoError(t, err)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "125000", res.Notifications[0].Details.Amount.String())
}

func TestService_List_UnauthorizedIsAnError(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).Return(nil, source.ErrUnauthorized)
	src.On("ListTasks", mock.Anything, mock.Anything, mock.Anything).Return([]domain.HousekeepingTask{}, nil).Maybe()
	src.On("ListPayments", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil).Maybe()

	_, err := newTestService(src).List(context.Background(), nil, FilterAll)
	assert.True(t, errors.Is(err, source.ErrUnauthorized))
}

func TestService_Badge(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Reservation{
		paidReservation("1", domain.ReservationConfirmed, daysFromToday(0), daysFromToday(1)),
	}, nil)
	src.On("ListTasks", mock.Anything, mock.Anything, mock.Anything).Return([]domain.HousekeepingTask{}, nil)
	src.On("ListPayments", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	badge, err := newTestService(src).Badge(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 1, High: 1, ActionRequired: 1}, badge.Summary)
	assert.Empty(t, badge.Degraded)
}
