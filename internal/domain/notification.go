package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type NotificationType string

const (
	NotifCheckIn      NotificationType = "checkin"
	NotifCheckOut     NotificationType = "checkout"
	NotifHousekeeping NotificationType = "housekeeping"
	NotifMaintenance  NotificationType = "maintenance"
	NotifPayment      NotificationType = "payment"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities; higher is more pressing.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// NotificationDetails is the type-specific payload. Only the fields relevant to the type are set.
type NotificationDetails struct {
	ReservationID      string           `json:"reservationId,omitempty"`
	ConfirmationNumber string           `json:"confirmationNumber,omitempty"`
	GuestName          string           `json:"guestName,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	RoomNumber         string           `json:"roomNumber,omitempty"`
	OutstandingAmount  *decimal.Decimal `json:"outstandingAmount,omitempty"`
	DaysOverdue        *int             `json:"daysOverdue,omitempty"`
	TaskID             string           `json:"taskId,omitempty"`
	AssignedTo         string           `json:"assignedTo,omitempty"`
	HoursOld           *float64         `json:"hoursOld,omitempty"`
	PaymentID          string           `json:"paymentId,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
}

// Notification is derived on every request and never stored.
type Notification struct {
	ID             string              `json:"id"`
	Type           NotificationType    `json:"type"`
	Title          string              `json:"title"`
	Message        string              `json:"message"`
	Priority       Priority            `json:"priority"`
	ActionRequired bool                `json:"actionRequired"`
	Timestamp      time.Time           `json:"timestamp"`
	Details        NotificationDetails `json:"details"`
}
