package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked_in"
	ReservationCheckedOut ReservationStatus = "checked_out"
	ReservationCancelled  ReservationStatus = "cancelled"
	ReservationNoShow     ReservationStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Guest is the summary of the guest embedded in a reservation.
type Guest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Reservation is a guest's stay. CheckInDate and CheckOutDate are midnight in the hotel time zone.
type Reservation struct {
	ID                string            `json:"id"`
	ReservationNumber string            `json:"reservation_number"`
	Guest             Guest             `json:"guest"`
	RoomID            string            `json:"room_id,omitempty"`
	RoomNumber        string            `json:"room_number,omitempty"`
	CheckInDate       time.Time         `json:"check_in_date"`
	CheckOutDate      time.Time         `json:"check_out_date"`
	Nights            int               `json:"nights"`
	RoomRate          decimal.Decimal   `json:"room_rate"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	PaidAmount        decimal.Decimal   `json:"paid_amount"`
	Status            ReservationStatus `json:"status"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	SpecialRequests   string            `json:"special_requests,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	CheckedInAt       *time.Time        `json:"checked_in_at,omitempty"`
	CheckedOutAt      *time.Time        `json:"checked_out_at,omitempty"`
}

// StayNights returns Nights, or the day difference of the stay dates when Nights is unset.
func (r Reservation) StayNights() int {
	if r.Nights > 0 {
		return r.Nights
	}
	if r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() {
		return 0
	}
	in := time.Date(r.CheckInDate.Year(), r.CheckInDate.Month(), r.CheckInDate.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(r.CheckOutDate.Year(), r.CheckOutDate.Month(), r.CheckOutDate.Day(), 0, 0, 0, 0, time.UTC)
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// Outstanding is total minus paid. It is negative when the guest overpaid.
func (r Reservation) Outstanding() decimal.Decimal {
	return r.TotalAmount.Sub(r.PaidAmount)
}

// Validate reports data-quality warnings. They are informational and never block processing.
func (r Reservation) Validate() []string {
	var warnings []string
	if !r.CheckInDate.IsZero() && !r.CheckOutDate.IsZero() && !r.CheckOutDate.After(r.CheckInDate) {
		warnings = append(warnings, "check-out date is not after check-in date")
	}
	if r.PaidAmount.GreaterThan(r.TotalAmount) {
		warnings = append(warnings, "paid amount exceeds total amount")
	}
	return warnings
}
