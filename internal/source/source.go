// Package source defines how entity collections are fetched from the system of record.
package source

import (
	"context"
	"errors"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
)

var (
	// ErrUnauthorized means the upstream rejected the session credentials.
	ErrUnauthorized = errors.New("upstream rejected credentials")
	// ErrUpstream covers every other upstream failure.
	ErrUpstream = errors.New("upstream request failed")
)

// Filter narrows a listing. Zero values mean "no restriction".
type Filter struct {
	From       time.Time
	To         time.Time
	Statuses   []string
	Department string
}

type ReservationLister interface {
	ListReservations(ctx context.Context, sess *session.Session, f Filter) ([]domain.Reservation, error)
}

type RoomLister interface {
	ListRooms(ctx context.Context, sess *session.Session, f Filter) ([]domain.Room, error)
}

type TaskLister interface {
	ListTasks(ctx context.Context, sess *session.Session, f Filter) ([]domain.HousekeepingTask, error)
}

type PaymentLister interface {
	ListPayments(ctx context.Context, sess *session.Session, f Filter) ([]domain.Payment, error)
}

// Source is the full set of fetch capabilities.
type Source interface {
	ReservationLister
	RoomLister
	TaskLister
	PaymentLister
}
