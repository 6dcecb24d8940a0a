package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type ReservationRepository struct {
	db  *gorm.DB
	loc *time.Location
}

func NewReservationRepository(db *gorm.DB, loc *time.Location) *ReservationRepository {
	return &ReservationRepository{db: db, loc: loc}
}

func (r *ReservationRepository) toDomain(m reservationModel) domain.Reservation {
	res := domain.Reservation{
		ID:                strconv.FormatInt(m.ID, 10),
		ReservationNumber: m.ReservationNumber,
		CheckInDate:       dates.Day(m.CheckInDate, r.loc),
		CheckOutDate:      dates.Day(m.CheckOutDate, r.loc),
		Nights:            m.Nights,
		RoomRate:          m.RoomRate,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		Status:            domain.ReservationStatus(m.Status),
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		SpecialRequests:   deref(m.SpecialRequests),
		Notes:             deref(m.Notes),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		CheckedInAt:       m.CheckedInAt,
		CheckedOutAt:      m.CheckedOutAt,
	}
	if m.RoomID != nil {
		res.RoomID = strconv.FormatInt(*m.RoomID, 10)
	}
	if m.Room != nil {
		res.RoomNumber = m.Room.Number
	}
	if m.Guest != nil {
		res.Guest = domain.Guest{
			ID:    strconv.FormatInt(m.Guest.ID, 10),
			Name:  m.Guest.Name,
			Phone: deref(m.Guest.Phone),
			Email: deref(m.Guest.Email),
		}
	}
	if res.Nights == 0 {
		res.Nights = res.StayNights()
	}
	return res
}

// ListReservations returns reservations whose stay overlaps [From, To].
func (r *ReservationRepository) ListReservations(ctx context.Context, _ *session.Session, f source.Filter) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).Preload("Guest").Preload("Room").Order("check_in_date DESC, id DESC")
	if !f.From.IsZero() {
		q = q.Where("check_out_date >= ?", dates.Day(f.From, r.loc))
	}
	if !f.To.IsZero() {
		q = q.Where("check_in_date <= ?", dates.Day(f.To, r.loc))
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var rows []reservationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Create inserts a reservation, creating its guest and resolving the room by number when needed.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := reservationModel{
			ReservationNumber: res.ReservationNumber,
			CheckInDate:       dates.Day(res.CheckInDate, r.loc),
			CheckOutDate:      dates.Day(res.CheckOutDate, r.loc),
			Nights:            res.StayNights(),
			RoomRate:          res.RoomRate,
			TotalAmount:       res.TotalAmount,
			PaidAmount:        res.PaidAmount,
			Status:            string(res.Status),
			PaymentStatus:     string(res.PaymentStatus),
			SpecialRequests:   optional(res.SpecialRequests),
			Notes:             optional(res.Notes),
			CheckedInAt:       res.CheckedInAt,
			CheckedOutAt:      res.CheckedOutAt,
		}

		if res.Guest.Name != "" {
			g := guestModel{Name: res.Guest.Name, Phone: optional(res.Guest.Phone), Email: optional(res.Guest.Email)}
			if err := tx.Create(&g).Error; err != nil {
				return fmt.Errorf("create guest: %w", err)
			}
			m.GuestID = &g.ID
		}

		if res.RoomNumber != "" {
			var room roomModel
			if err := tx.Where("room_number = ?", res.RoomNumber).First(&room).Error; err != nil {
				return fmt.Errorf("find room %s: %w", res.RoomNumber, err)
			}
			m.RoomID = &room.ID
		}

		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		res.ID = strconv.FormatInt(m.ID, 10)
		return nil
	})
}

// UpdatePaidAmount records a new paid total on a reservation. Used by seeding and fixtures only.
func (r *ReservationRepository) UpdatePaidAmount(ctx context.Context, id string, paid decimal.Decimal, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).Where("id = ?", id).Updates(map[string]any{
		"paid_amount":    paid,
		"payment_status": string(status),
	})
	if tx.Error != nil {
		return fmt.Errorf("update reservation %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
