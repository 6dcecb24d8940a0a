package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOnline       PaymentMethod = "online"
)

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentFull    PaymentType = "full_payment"
	PaymentRefund  PaymentType = "refund"
	PaymentPartial PaymentType = "partial_payment"
)

type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
	PaymentFailed    PaymentState = "failed"
	PaymentRefunded  PaymentState = "refunded"
)

type Payment struct {
	ID            string          `json:"id"`
	ReservationID string          `json:"reservation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"payment_method"`
	Type          PaymentType     `json:"payment_type"`
	Status        PaymentState    `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	ProcessedBy   string          `json:"processed_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
