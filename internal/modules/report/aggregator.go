// Package report computes dashboard metrics and room breakdowns from fetched entities.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
)

// RecentLimit is how many reservations the dashboard lists.
const RecentLimit = 5

var hundred = decimal.NewFromInt(100)

// Range is an inclusive span of calendar days.
type Range struct {
	From time.Time
	To   time.Time
}

// Valid reports whether To is not before From.
func (r Range) Valid() bool {
	return !r.To.Before(r.From)
}

type Input struct {
	Range        Range
	Rooms        []domain.Room
	Reservations []domain.Reservation
	Payments     []domain.Payment
	Now          time.Time
}

// Collection is the net amount collected through one payment method.
type Collection struct {
	Method domain.PaymentMethod
	Amount decimal.Decimal
	Count  int
}

// Dashboard holds full-precision metrics. Rounding happens in the view.
type Dashboard struct {
	Range              Range
	DaysInRange        int
	OccupiedRooms      int
	TotalRooms         int
	OccupancyRate      decimal.Decimal
	TodayCheckIns      int
	TodayCheckOuts     int
	Revenue            decimal.Decimal
	RoomNights         int
	ADR                decimal.Decimal
	RevPAR             decimal.Decimal
	RecentReservations []domain.Reservation
	Collections        []Collection
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Rooms is the range-independent room inventory breakdown.
type Rooms struct {
	Total    int     `json:"total"`
	ByStatus []Count `json:"byStatus"`
	ByType   []Count `json:"byType"`
}

type Aggregator struct {
	loc *time.Location
}

func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

func (a *Aggregator) Aggregate(in Input) Dashboard {
	from := dates.Day(in.Range.From, a.loc)
	to := dates.Day(in.Range.To, a.loc)
	rng := Range{From: from, To: to}
	today := dates.Day(in.Now, a.loc)

	d := Dashboard{
		Range:              rng,
		TotalRooms:         len(in.Rooms),
		OccupancyRate:      decimal.Zero,
		Revenue:            decimal.Zero,
		ADR:                decimal.Zero,
		RevPAR:             decimal.Zero,
		RecentReservations: []domain.Reservation{},
		Collections:        []Collection{},
	}
	if rng.Valid() {
		d.DaysInRange = dates.DaysBetween(from, to, a.loc) + 1
	}

	for _, room := range in.Rooms {
		if room.Status == domain.RoomOccupied {
			d.OccupiedRooms++
		}
	}
	if d.TotalRooms > 0 {
		d.OccupancyRate = decimal.NewFromInt(int64(d.OccupiedRooms)).Mul(hundred).Div(decimal.NewFromInt(int64(d.TotalRooms)))
	}

	var revenueSet []domain.Reservation
	for _, r := range in.Reservations {
		if dates.SameDay(r.CheckInDate, today, a.loc) &&
			(r.Status == domain.ReservationConfirmed || r.Status == domain.ReservationCheckedIn) {
			d.TodayCheckIns++
		}
		if dates.SameDay(r.CheckOutDate, today, a.loc) &&
			(r.Status == domain.ReservationCheckedIn || r.Status == domain.ReservationCheckedOut) {
			d.TodayCheckOuts++
		}
		if a.earnsRevenue(r, rng) {
			revenueSet = append(revenueSet, r)
			d.Revenue = d.Revenue.Add(r.TotalAmount)
			d.RoomNights += r.StayNights()
		}
	}

	if d.RoomNights > 0 {
		d.ADR = d.Revenue.Div(decimal.NewFromInt(int64(d.RoomNights)))
	}
	if available := d.TotalRooms * d.DaysInRange; available > 0 {
		d.RevPAR = d.Revenue.Div(decimal.NewFromInt(int64(available)))
	}

	if rng.Valid() {
		recent := revenueSet
		if len(recent) == 0 {
			recent = in.Reservations
		}
		d.RecentReservations = latest(recent, RecentLimit)
		d.Collections = a.collections(in.Payments, rng)
	}
	return d
}

func (a *Aggregator) earnsRevenue(r domain.Reservation, rng Range) bool {
	if !rng.Valid() || r.CheckInDate.IsZero() {
		return false
	}
	if r.Status == domain.ReservationCancelled || r.Status == domain.ReservationNoShow {
		return false
	}
	return a.inRange(r.CheckInDate, rng)
}

func (a *Aggregator) inRange(t time.Time, rng Range) bool {
	day := dates.Day(t, a.loc)
	return !day.Before(rng.From) && !day.After(rng.To)
}

// latest returns up to n reservations ordered by check-in date, newest first.
func latest(in []domain.Reservation, n int) []domain.Reservation {
	out := make([]domain.Reservation, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CheckInDate.Equal(out[j].CheckInDate) {
			return out[i].CheckInDate.After(out[j].CheckInDate)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// collections nets completed payments created inside the range by method. Refunds subtract.
func (a *Aggregator) collections(payments []domain.Payment, rng Range) []Collection {
	byMethod := map[domain.PaymentMethod]*Collection{}
	for _, p := range payments {
		if p.Status != domain.PaymentCompleted || p.CreatedAt.IsZero() || !a.inRange(p.CreatedAt, rng) {
			continue
		}
		c, ok := byMethod[p.Method]
		if !ok {
			c = &Collection{Method: p.Method, Amount: decimal.Zero}
			byMethod[p.Method] = c
		}
		if p.Type == domain.PaymentRefund {
			c.Amount = c.Amount.Sub(p.Amount.Abs())
		} else {
			c.Amount = c.Amount.Add(p.Amount)
		}
		c.Count++
	}

	out := make([]Collection, 0, len(byMethod))
	for _, c := range byMethod {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

// RoomBreakdown counts rooms by status and by type. Every known status is listed.
func (a *Aggregator) RoomBreakdown(rooms []domain.Room) Rooms {
	byStatus := make(map[string]int, len(domain.RoomStatuses))
	for _, s := range domain.RoomStatuses {
		byStatus[string(s)] = 0
	}
	byType := map[string]int{}
	for _, r := range rooms {
		s := string(r.Status)
		if s == "" {
			s = "unknown"
		}
		byStatus[s]++
		t := r.Type
		if t == "" {
			t = "unknown"
		}
		byType[t]++
	}
	return Rooms{
		Total:    len(rooms),
		ByStatus: sortedCounts(byStatus),
		ByType:   sortedCounts(byType),
	}
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
