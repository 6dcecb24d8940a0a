package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source/sourcetest"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []any
}

func (r *recordingBroadcaster) Broadcast(message any) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return 1
}

func TestPoller_RunCachesAndBroadcasts(t *testing.T) {
	src := new(sourcetest.MockSource)
	sess := session.Service("svc-token")
	src.On("ListReservations", mock.Anything, sess, mock.Anything).Return([]domain.Reservation{
		paidReservation("1", domain.ReservationConfirmed, daysFromToday(-2), daysFromToday(1)),
	}, nil)
	src.On("ListTasks", mock.Anything, sess, mock.Anything).Return([]domain.HousekeepingTask{}, nil)
	src.On("ListPayments", mock.Anything, sess, mock.Anything).Return([]domain.Payment{}, nil)

	cache := NewMemoryCache(0)
	hub := &recordingBroadcaster{}
	p := NewPoller(newTestService(src), cache, hub, sess, time.Minute)

	p.Run()
	p.Run()

	badge, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, badge.Summary.Urgent)

	require.Len(t, hub.messages, 2)
	msg, ok := hub.messages[0].(wsMessage)
	require.True(t, ok)
	assert.Equal(t, "notifications.summary", msg.Event)
	assert.Equal(t, badge.Summary, msg.Data.Summary)
}

func TestPoller_StartStop(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)
	src.On("ListTasks", mock.Anything, mock.Anything, mock.Anything).Return([]domain.HousekeepingTask{}, nil)
	src.On("ListPayments", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	cache := NewMemoryCache(0)
	p := NewPoller(newTestService(src), cache, &recordingBroadcaster{}, session.Service(""), time.Hour)
	require.NoError(t, p.Start())

	assert.Eventually(t, func() bool {
		_, err := cache.Get(context.Background())
		return err == nil
	}, time.Second, 10*time.Millisecond)

	<-p.Stop().Done()
}

func TestMemoryCache_Miss(t *testing.T) {
	_, err := NewMemoryCache(0).Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expires(t *testing.T) {
	now := testNow
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(context.Background(), &Badge{Summary: Summary{Total: 3}}))
	b, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Summary.Total)

	now = now.Add(time.Minute)
	_, err = cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}
