package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type Service struct {
	loader     Loader
	aggregator *Aggregator
	loc        *time.Location
	places     int32
	now        func() time.Time
}

func NewService(loader Loader, loc *time.Location, currencyDecimals int32) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		loader:     loader,
		aggregator: NewAggregator(loc),
		loc:        loc,
		places:     currencyDecimals,
		now:        time.Now,
	}
}

// ResolveRange parses the query dates. A missing from defaults to the first of the month,
// a missing to defaults to today.
func (s *Service) ResolveRange(fromDate, toDate string) (Range, error) {
	monthStart, today := dates.MonthToDate(s.now(), s.loc)
	rng := Range{From: monthStart, To: today}

	if v := strings.TrimSpace(fromDate); v != "" {
		t, err := dates.ParseDay(v, s.loc)
		if err != nil {
			return Range{}, fmt.Errorf("fromDate: %w", ErrInvalidDate)
		}
		rng.From = t
	}
	if v := strings.TrimSpace(toDate); v != "" {
		t, err := dates.ParseDay(v, s.loc)
		if err != nil {
			return Range{}, fmt.Errorf("toDate: %w", ErrInvalidDate)
		}
		rng.To = t
	}
	return rng, nil
}

func (s *Service) dashboardRequest(rng Range) source.Request {
	req := source.Request{
		Rooms:        &source.Filter{},
		Reservations: &source.Filter{},
	}
	if rng.Valid() {
		req.Payments = &source.Filter{
			From:     rng.From,
			To:       rng.To.AddDate(0, 0, 1).Add(-time.Nanosecond),
			Statuses: []string{string(domain.PaymentCompleted)},
		}
	}
	return req
}

func (s *Service) load(ctx context.Context, sess *session.Session, rng Range) (Dashboard, Rooms, source.Snapshot, error) {
	snap, err := s.loader.Load(ctx, sess, s.dashboardRequest(rng))
	if err != nil {
		return Dashboard{}, Rooms{}, snap, fmt.Errorf("load report sources: %w", err)
	}
	d := s.aggregator.Aggregate(Input{
		Range:        rng,
		Rooms:        snap.Rooms.Items,
		Reservations: snap.Reservations.Items,
		Payments:     snap.Payments.Items,
		Now:          s.now(),
	})
	return d, s.aggregator.RoomBreakdown(snap.Rooms.Items), snap, nil
}

func (s *Service) Dashboard(ctx context.Context, sess *session.Session, rng Range) (*DashboardResponse, error) {
	d, _, snap, err := s.load(ctx, sess, rng)
	if err != nil {
		return nil, err
	}
	return &DashboardResponse{
		Dashboard:   NewDashboardView(d, s.places),
		Degraded:    snap.Degraded(),
		GeneratedAt: s.now(),
	}, nil
}

func (s *Service) Rooms(ctx context.Context, sess *session.Session) (*RoomsResponse, error) {
	snap, err := s.loader.Load(ctx, sess, source.Request{Rooms: &source.Filter{}})
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	return &RoomsResponse{
		Rooms:       s.aggregator.RoomBreakdown(snap.Rooms.Items),
		Degraded:    snap.Degraded(),
		GeneratedAt: s.now(),
	}, nil
}

// Export renders the dashboard and room breakdown as an xlsx workbook.
func (s *Service) Export(ctx context.Context, sess *session.Session, rng Range) ([]byte, string, error) {
	d, rooms, snap, err := s.load(ctx, sess, rng)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	view := NewDashboardView(d, s.places)
	if err := WriteWorkbook(&buf, view, rooms, snap.Degraded()); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	name := fmt.Sprintf("hotel-report_%s_%s.xlsx", view.FromDate, view.ToDate)
	log.Info().Str("file", name).Int("bytes", buf.Len()).Msg("report exported")
	return buf.Bytes(), name, nil
}
