package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hoteldash/internal/domain"
)

var ErrStaffNotFound = errors.New("staff not found")

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func toDomainStaff(m staffModel) *domain.Staff {
	return &domain.Staff{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.StaffRole(m.Role),
		Department:   deref(m.Department),
		IsActive:     m.IsActive,
	}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	m := staffModel{
		Username:     strings.ToLower(strings.TrimSpace(s.Username)),
		PasswordHash: s.PasswordHash,
		Name:         s.Name,
		Role:         string(s.Role),
		Department:   optional(s.Department),
		IsActive:     s.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	*s = *toDomainStaff(m)
	return nil
}

func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	var m staffModel
	tx := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}
