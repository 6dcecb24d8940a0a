package repository

import (
	"time"

	"gorm.io/gorm"
)

// Source serves every entity collection from the local database.
type Source struct {
	*ReservationRepository
	*RoomRepository
	*TaskRepository
	*PaymentRepository
}

func NewSource(db *gorm.DB, loc *time.Location) *Source {
	return &Source{
		ReservationRepository: NewReservationRepository(db, loc),
		RoomRepository:        NewRoomRepository(db),
		TaskRepository:        NewTaskRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
	}
}
