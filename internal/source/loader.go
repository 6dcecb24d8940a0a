package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
)

// Entity names used in degradation reports.
const (
	EntityReservations = "reservations"
	EntityRooms        = "rooms"
	EntityTasks        = "housekeeping_tasks"
	EntityPayments     = "payments"
)

// Request selects which collections to load. A nil filter skips that collection.
type Request struct {
	Reservations *Filter
	Rooms        *Filter
	Tasks        *Filter
	Payments     *Filter
}

// Snapshot is the settled outcome of one fan-out load.
type Snapshot struct {
	Reservations Result[domain.Reservation]
	Rooms        Result[domain.Room]
	Tasks        Result[domain.HousekeepingTask]
	Payments     Result[domain.Payment]
}

// DegradedSource names a collection that fell back to empty.
type DegradedSource struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

func (s Snapshot) Degraded() []DegradedSource {
	out := []DegradedSource{}
	add := func(name string, degraded bool, reason string) {
		if degraded {
			out = append(out, DegradedSource{Source: name, Reason: reason})
		}
	}
	add(EntityReservations, s.Reservations.Degraded, s.Reservations.Reason)
	add(EntityRooms, s.Rooms.Degraded, s.Rooms.Reason)
	add(EntityTasks, s.Tasks.Degraded, s.Tasks.Reason)
	add(EntityPayments, s.Payments.Degraded, s.Payments.Reason)
	return out
}

type Loader struct {
	src Source
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load fetches the requested collections concurrently and waits for all of them.
// Fetch failures degrade the collection; only ErrUnauthorized is returned as an error.
func (l *Loader) Load(ctx context.Context, sess *session.Session, req Request) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	if req.Reservations != nil {
		f := *req.Reservations
		g.Go(func() error {
			items, err := l.src.ListReservations(gctx, sess, f)
			snap.Reservations, err = settle(EntityReservations, items, err)
			return err
		})
	}
	if req.Rooms != nil {
		f := *req.Rooms
		g.Go(func() error {
			items, err := l.src.ListRooms(gctx, sess, f)
			snap.Rooms, err = settle(EntityRooms, items, err)
			return err
		})
	}
	if req.Tasks != nil {
		f := *req.Tasks
		g.Go(func() error {
			items, err := l.src.ListTasks(gctx, sess, f)
			snap.Tasks, err = settle(EntityTasks, items, err)
			return err
		})
	}
	if req.Payments != nil {
		f := *req.Payments
		g.Go(func() error {
			items, err := l.src.ListPayments(gctx, sess, f)
			snap.Payments, err = settle(EntityPayments, items, err)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func settle[T any](entity string, items []T, err error) (Result[T], error) {
	if err == nil {
		return Ok(items), nil
	}
	if errors.Is(err, ErrUnauthorized) {
		return Result[T]{}, fmt.Errorf("list %s: %w", entity, err)
	}
	log.Warn().Err(err).Str("source", entity).Str("reason", err.Error()).Msg("entity fetch degraded to empty collection")
	return Degraded[T](err.Error()), nil
}
