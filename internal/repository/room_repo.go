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

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func toDomainRoom(m roomModel) domain.Room {
	return domain.Room{
		ID:           strconv.FormatInt(m.ID, 10),
		Number:       m.Number,
		Type:         m.Type,
		Floor:        m.Floor,
		MaxOccupancy: m.MaxOccupancy,
		BaseRate:     m.BaseRate,
		Status:       domain.RoomStatus(m.Status),
	}
}

func (r *RoomRepository) ListRooms(ctx context.Context, _ *session.Session, f source.Filter) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Order("room_number ASC")
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var rows []roomModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		Number:       room.Number,
		Type:         room.Type,
		Floor:        room.Floor,
		MaxOccupancy: room.MaxOccupancy,
		BaseRate:     room.BaseRate,
		Status:       string(room.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	*room = toDomainRoom(m)
	return nil
}
