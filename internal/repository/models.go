package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type guestModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Phone     *string   `gorm:"column:phone"`
	Email     *string   `gorm:"column:email"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (guestModel) TableName() string { return "guests" }

type roomModel struct {
	ID           int64           `gorm:"column:id;primaryKey"`
	Number       string          `gorm:"column:room_number;uniqueIndex;not null"`
	Type         string          `gorm:"column:room_type"`
	Floor        int             `gorm:"column:floor"`
	MaxOccupancy int             `gorm:"column:max_occupancy"`
	BaseRate     decimal.Decimal `gorm:"column:base_rate;type:decimal(14,2)"`
	Status       string          `gorm:"column:status;index"`
}

func (roomModel) TableName() string { return "rooms" }

type reservationModel struct {
	ID                int64           `gorm:"column:id;primaryKey"`
	ReservationNumber string          `gorm:"column:reservation_number;uniqueIndex;not null"`
	GuestID           *int64          `gorm:"column:guest_id"`
	RoomID            *int64          `gorm:"column:room_id"`
	CheckInDate       time.Time       `gorm:"column:check_in_date;index"`
	CheckOutDate      time.Time       `gorm:"column:check_out_date"`
	Nights            int             `gorm:"column:nights"`
	RoomRate          decimal.Decimal `gorm:"column:room_rate;type:decimal(14,2)"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:decimal(14,2)"`
	PaidAmount        decimal.Decimal `gorm:"column:paid_amount;type:decimal(14,2)"`
	Status            string          `gorm:"column:status;index"`
	PaymentStatus     string          `gorm:"column:payment_status"`
	SpecialRequests   *string         `gorm:"column:special_requests"`
	Notes             *string         `gorm:"column:notes"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
	CheckedInAt       *time.Time      `gorm:"column:checked_in_at"`
	CheckedOutAt      *time.Time      `gorm:"column:checked_out_at"`

	Guest *guestModel `gorm:"foreignKey:GuestID"`
	Room  *roomModel  `gorm:"foreignKey:RoomID"`
}

func (reservationModel) TableName() string { return "reservations" }

type taskModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	RoomID           *int64     `gorm:"column:room_id"`
	TaskType         string     `gorm:"column:task_type"`
	Priority         string     `gorm:"column:priority"`
	Status           string     `gorm:"column:status;index"`
	Department       string     `gorm:"column:department"`
	AssignedTo       *string    `gorm:"column:assigned_to"`
	Description      *string    `gorm:"column:description"`
	EstimatedMinutes int        `gorm:"column:estimated_minutes"`
	CreatedBy        *string    `gorm:"column:created_by"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	StartedAt        *time.Time `gorm:"column:started_at"`
	CompletedAt      *time.Time `gorm:"column:completed_at"`

	Room *roomModel `gorm:"foreignKey:RoomID"`
}

func (taskModel) TableName() string { return "housekeeping_tasks" }

type paymentModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	ReservationID int64           `gorm:"column:reservation_id;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(14,2)"`
	Method        string          `gorm:"column:payment_method"`
	Type          string          `gorm:"column:payment_type"`
	Status        string          `gorm:"column:status"`
	TransactionID *string         `gorm:"column:transaction_id"`
	ProcessedBy   *string         `gorm:"column:processed_by"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
}

func (paymentModel) TableName() string { return "payments" }

type staffModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	Department   *string   `gorm:"column:department"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (staffModel) TableName() string { return "staff" }

// AutoMigrate creates or updates the tables backing the local entity source.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&guestModel{},
		&roomModel{},
		&reservationModel{},
		&taskModel{},
		&paymentModel{},
		&staffModel{},
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
