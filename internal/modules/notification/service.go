package notification

import (
	"context"
	"fmt"
	"time"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type Service struct {
	loader  Loader
	deriver *Deriver
	policy  Policy
	now     func() time.Time
}

func NewService(loader Loader, policy Policy, loc *time.Location) *Service {
	return &Service{
		loader:  loader,
		deriver: NewDeriver(policy, loc),
		policy:  policy,
		now:     time.Now,
	}
}

// request selects only the collections the filter reads, pre-narrowed by status.
func (s *Service) request(filter Filter, now time.Time) source.Request {
	var req source.Request
	reservations, tasks, payments := filter.needs()
	if reservations {
		req.Reservations = &source.Filter{Statuses: []string{
			string(domain.ReservationConfirmed),
			string(domain.ReservationCheckedIn),
			string(domain.ReservationCheckedOut),
			string(domain.ReservationNoShow),
		}}
	}
	if tasks {
		req.Tasks = &source.Filter{Statuses: []string{string(domain.TaskPending), string(domain.TaskInProgress)}}
	}
	if payments {
		req.Payments = &source.Filter{
			From:     now.Add(-s.policy.FailedPaymentLookback),
			To:       now,
			Statuses: []string{string(domain.PaymentFailed)},
		}
	}
	return req
}

// List derives the current notifications. Failed fetches degrade; only rejected credentials are errors.
func (s *Service) List(ctx context.Context, sess *session.Session, filter Filter) (*ListResponse, error) {
	now := s.now()
	snap, err := s.loader.Load(ctx, sess, s.request(filter, now))
	if err != nil {
		return nil, fmt.Errorf("load notification sources: %w", err)
	}

	res := s.deriver.Derive(Input{
		Reservations: snap.Reservations.Items,
		Tasks:        snap.Tasks.Items,
		Payments:     snap.Payments.Items,
		Now:          now,
	}, filter)

	return &ListResponse{
		Notifications: round(res.Notifications, s.policy.CurrencyDecimals),
		Summary:       res.Summary,
		Degraded:      snap.Degraded(),
		GeneratedAt:   now,
	}, nil
}

func (s *Service) Badge(ctx context.Context, sess *session.Session) (*Badge, error) {
	res, err := s.List(ctx, sess, FilterAll)
	if err != nil {
		return nil, err
	}
	return &Badge{Summary: res.Summary, Degraded: res.Degraded, GeneratedAt: res.GeneratedAt}, nil
}
