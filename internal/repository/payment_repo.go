package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"hoteldash/internal/domain"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func toDomainPayment(m paymentModel) domain.Payment {
	return domain.Payment{
		ID:            strconv.FormatInt(m.ID, 10),
		ReservationID: strconv.FormatInt(m.ReservationID, 10),
		Amount:        m.Amount,
		Method:        domain.PaymentMethod(m.Method),
		Type:          domain.PaymentType(m.Type),
		Status:        domain.PaymentState(m.Status),
		TransactionID: m.TransactionID,
		ProcessedBy:   deref(m.ProcessedBy),
		CreatedAt:     m.CreatedAt,
	}
}

// ListPayments returns payments created inside [From, To].
func (r *PaymentRepository) ListPayments(ctx context.Context, _ *session.Session, f source.Filter) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var rows []paymentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	resID, err := strconv.ParseInt(p.ReservationID, 10, 64)
	if err != nil {
		return fmt.Errorf("payment reservation id %q: %w", p.ReservationID, err)
	}
	m := paymentModel{
		ReservationID: resID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Type:          string(p.Type),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		ProcessedBy:   optional(p.ProcessedBy),
		CreatedAt:     p.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	*p = toDomainPayment(m)
	return nil
}
