package rest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
)

// record is one upstream object. Field names vary between backend versions;
// every lookup takes the accepted aliases in order of preference.
type record map[string]any

func (r record) raw(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r record) str(keys ...string) string {
	v, ok := r.raw(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		// Relations are sometimes expanded: {"room": {"room_number": "101"}}.
		return record(t).str("name", "number", "room_number", "username", "id")
	default:
		return fmt.Sprint(t)
	}
}

func (r record) obj(keys ...string) (record, bool) {
	v, ok := r.raw(keys...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return record(m), ok
}

func (r record) dec(keys ...string) decimal.Decimal {
	s := r.str(keys...)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r record) integer(keys ...string) int {
	s := r.str(keys...)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// timestamp parses an instant. Zone-less values are read in loc.
func (r record) timestamp(loc *time.Location, keys ...string) time.Time {
	s := r.str(keys...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t
	}
	return time.Time{}
}

func (r record) timestampPtr(loc *time.Location, keys ...string) *time.Time {
	t := r.timestamp(loc, keys...)
	if t.IsZero() {
		return nil
	}
	return &t
}

// day parses a calendar date as midnight in loc. Full timestamps are shifted into loc first.
func (r record) day(loc *time.Location, keys ...string) time.Time {
	s := r.str(keys...)
	if s == "" {
		return time.Time{}
	}
	if len(s) == len(time.DateOnly) {
		if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
			return t
		}
	}
	t := r.timestamp(loc, keys...)
	if t.IsZero() {
		return t
	}
	return dates.Day(t, loc)
}

func lower(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

func normalizeReservation(r record, loc *time.Location) domain.Reservation {
	res := domain.Reservation{
		ID:                r.str("id", "reservation_id", "_id"),
		ReservationNumber: r.str("reservation_number", "confirmation_number", "booking_number", "code"),
		RoomID:            r.str("room_id"),
		RoomNumber:        r.str("room_number", "room_no"),
		CheckInDate:       r.day(loc, "check_in_date", "check_in", "checkin_date", "arrival_date"),
		CheckOutDate:      r.day(loc, "check_out_date", "check_out", "checkout_date", "departure_date"),
		Nights:            r.integer("nights", "number_of_nights", "num_nights"),
		RoomRate:          r.dec("room_rate", "rate", "nightly_rate"),
		TotalAmount:       r.dec("total_amount", "total", "amount", "total_price"),
		PaidAmount:        r.dec("paid_amount", "amount_paid", "paid"),
		Status:            domain.ReservationStatus(lower(r.str("status", "reservation_status"))),
		PaymentStatus:     domain.PaymentStatus(lower(r.str("payment_status"))),
		SpecialRequests:   r.str("special_requests"),
		Notes:             r.str("notes"),
		CreatedAt:         r.timestamp(loc, "created_at", "createdAt"),
		UpdatedAt:         r.timestamp(loc, "updated_at", "updatedAt"),
		CheckedInAt:       r.timestampPtr(loc, "checked_in_at", "actual_check_in"),
		CheckedOutAt:      r.timestampPtr(loc, "checked_out_at", "actual_check_out"),
	}

	if room, ok := r.obj("room"); ok {
		if res.RoomID == "" {
			res.RoomID = room.str("id")
		}
		if res.RoomNumber == "" {
			res.RoomNumber = room.str("room_number", "number")
		}
	}

	res.Guest = normalizeGuest(r)
	if res.Nights == 0 {
		res.Nights = res.StayNights()
	}
	return res
}

func normalizeGuest(r record) domain.Guest {
	g := domain.Guest{
		ID:    r.str("guest_id"),
		Name:  r.str("guest_name"),
		Phone: r.str("guest_phone", "phone"),
		Email: r.str("guest_email", "email"),
	}
	if nested, ok := r.obj("guest", "customer"); ok {
		if g.ID == "" {
			g.ID = nested.str("id")
		}
		if g.Name == "" {
			g.Name = nested.str("full_name", "name")
		}
		if g.Name == "" {
			g.Name = strings.TrimSpace(nested.str("first_name") + " " + nested.str("last_name"))
		}
		if g.Phone == "" {
			g.Phone = nested.str("phone", "phone_number", "mobile")
		}
		if g.Email == "" {
			g.Email = nested.str("email")
		}
	}
	return g
}

func normalizeRoom(r record) domain.Room {
	status := lower(r.str("status", "room_status"))
	if status == "out_of_order" {
		status = string(domain.RoomBlocked)
	}
	return domain.Room{
		ID:           r.str("id", "room_id"),
		Number:       r.str("room_number", "number", "name"),
		Type:         r.str("room_type", "type", "category"),
		Floor:        r.integer("floor", "floor_number"),
		MaxOccupancy: r.integer("max_occupancy", "capacity"),
		BaseRate:     r.dec("base_rate", "rate", "price"),
		Status:       domain.RoomStatus(status),
	}
}

func normalizeTask(r record, loc *time.Location) domain.HousekeepingTask {
	t := domain.HousekeepingTask{
		ID:               r.str("id", "task_id"),
		RoomID:           r.str("room_id"),
		RoomNumber:       r.str("room_number"),
		TaskType:         domain.TaskType(lower(r.str("task_type", "type"))),
		Priority:         domain.TaskPriority(lower(r.str("priority"))),
		Status:           domain.TaskStatus(lower(r.str("status"))),
		AssignedTo:       r.str("assigned_to_name", "assigned_to", "assignee"),
		Description:      r.str("description", "notes"),
		EstimatedMinutes: r.integer("estimated_duration", "estimated_minutes"),
		CreatedBy:        r.str("created_by"),
		CreatedAt:        r.timestamp(loc, "created_at", "createdAt"),
		StartedAt:        r.timestampPtr(loc, "started_at"),
		CompletedAt:      r.timestampPtr(loc, "completed_at"),
	}
	if room, ok := r.obj("room"); ok && t.RoomNumber == "" {
		t.RoomNumber = room.str("room_number", "number")
	}
	if t.Priority == "" {
		t.Priority = domain.TaskPriorityNormal
	}
	return t
}

func normalizePayment(r record, loc *time.Location) domain.Payment {
	p := domain.Payment{
		ID:            r.str("id", "payment_id"),
		ReservationID: r.str("reservation_id", "booking_id"),
		Amount:        r.dec("amount"),
		Method:        domain.PaymentMethod(lower(r.str("payment_method", "method"))),
		Type:          domain.PaymentType(lower(r.str("payment_type", "type"))),
		Status:        domain.PaymentState(lower(r.str("status", "payment_status"))),
		ProcessedBy:   r.str("processed_by"),
		CreatedAt:     r.timestamp(loc, "created_at", "payment_date", "paid_at"),
	}
	if tx := r.str("transaction_id", "reference"); tx != "" {
		p.TransactionID = &tx
	}
	return p
}
