package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hoteldash/internal/database"
	"hoteldash/internal/domain"
	"hoteldash/internal/source"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	db = database.Silent(db)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRooms(t *testing.T, repo *RoomRepository) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []domain.Room{
		{Number: "101", Type: "deluxe", Floor: 1, MaxOccupancy: 2, BaseRate: decimal.NewFromInt(500000), Status: domain.RoomOccupied},
		{Number: "102", Type: "deluxe", Floor: 1, MaxOccupancy: 2, BaseRate: decimal.NewFromInt(500000), Status: domain.RoomAvailable},
		{Number: "201", Type: "suite", Floor: 2, MaxOccupancy: 4, BaseRate: decimal.NewFromInt(1200000), Status: domain.RoomDirty},
	} {
		room := r
		require.NoError(t, repo.Create(ctx, &room))
	}
}

func TestRoomRepository_ListRooms(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	seedRooms(t, repo)

	all, err := repo.ListRooms(context.Background(), nil, source.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "101", all[0].Number)
	assert.True(t, decimal.NewFromInt(1200000).Equal(all[2].BaseRate))

	occupied, err := repo.ListRooms(context.Background(), nil, source.Filter{Statuses: []string{"occupied"}})
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, domain.RoomOccupied, occupied[0].Status)
}

func TestReservationRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedRooms(t, NewRoomRepository(db))
	repo := NewReservationRepository(db, time.UTC)

	res := domain.Reservation{
		ReservationNumber: "RSV-1",
		Guest:             domain.Guest{Name: "Dewi", Phone: "+62811"},
		RoomNumber:        "101",
		CheckInDate:       day(2024, 3, 1),
		CheckOutDate:      day(2024, 3, 3),
		TotalAmount:       decimal.NewFromInt(1000000),
		PaidAmount:        decimal.NewFromInt(250000),
		Status:            domain.ReservationCheckedIn,
		PaymentStatus:     domain.PaymentStatusPartial,
	}
	require.NoError(t, repo.Create(ctx, &res))
	assert.NotEmpty(t, res.ID)

	other := domain.Reservation{
		ReservationNumber: "RSV-2",
		CheckInDate:       day(2024, 4, 10),
		CheckOutDate:      day(2024, 4, 12),
		Status:            domain.ReservationCancelled,
	}
	require.NoError(t, repo.Create(ctx, &other))

	got, err := repo.ListReservations(ctx, nil, source.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "RSV-2", got[0].ReservationNumber)

	got, err = repo.ListReservations(ctx, nil, source.Filter{Statuses: []string{"checked_in"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "Dewi", r.Guest.Name)
	assert.Equal(t, "+62811", r.Guest.Phone)
	assert.Equal(t, "101", r.RoomNumber)
	assert.Equal(t, 2, r.Nights)
	assert.Equal(t, "2024-03-01", r.CheckInDate.Format(time.DateOnly))
	assert.True(t, decimal.NewFromInt(750000).Equal(r.Outstanding()))

	require.NoError(t, repo.UpdatePaidAmount(ctx, r.ID, decimal.NewFromInt(1000000), domain.PaymentStatusPaid))
	got, err = repo.ListReservations(ctx, nil, source.Filter{Statuses: []string{"checked_in"}})
	require.NoError(t, err)
	assert.True(t, got[0].Outstanding().IsZero())
	assert.Equal(t, domain.PaymentStatusPaid, got[0].PaymentStatus)
}

func TestReservationRepository_UnknownRoom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db, time.UTC)

	err := repo.Create(context.Background(), &domain.Reservation{
		ReservationNumber: "RSV-9",
		RoomNumber:        "999",
		CheckInDate:       day(2024, 3, 1),
		CheckOutDate:      day(2024, 3, 2),
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListOpenByDepartment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedRooms(t, NewRoomRepository(db))
	repo := NewTaskRepository(db)

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, task := range []domain.HousekeepingTask{
		{RoomNumber: "102", TaskType: domain.TaskCleaning, Priority: domain.TaskPriorityNormal, Status: domain.TaskPending, CreatedAt: created},
		{RoomNumber: "201", TaskType: domain.TaskMaintenance, Priority: domain.TaskPriorityHigh, Status: domain.TaskInProgress, AssignedTo: "Agus", CreatedAt: created},
		{RoomNumber: "101", TaskType: domain.TaskInspection, Priority: domain.TaskPriorityLow, Status: domain.TaskCompleted, CreatedAt: created},
	} {
		tk := task
		require.NoError(t, repo.Create(ctx, &tk, ""))
	}

	open, err := repo.ListTasks(ctx, nil, source.Filter{Statuses: []string{"pending", "in_progress"}})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	maint, err := repo.ListTasks(ctx, nil, source.Filter{Department: "maintenance"})
	require.NoError(t, err)
	require.Len(t, maint, 1)
	assert.Equal(t, "201", maint[0].RoomNumber)
	assert.Equal(t, "Agus", maint[0].AssignedTo)
}

func TestPaymentRepository_ListByWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPaymentRepository(db)

	for i, at := range []time.Time{
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	} {
		p := domain.Payment{
			ReservationID: "1",
			Amount:        decimal.NewFromInt(int64(100000 * (i + 1))),
			Method:        domain.MethodCash,
			Type:          domain.PaymentDeposit,
			Status:        domain.PaymentCompleted,
			CreatedAt:     at,
		}
		require.NoError(t, repo.Create(ctx, &p))
	}

	got, err := repo.ListPayments(ctx, nil, source.Filter{
		From: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(200000).Equal(got[0].Amount))
}

func TestStaffRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStaffRepository(db)

	s := domain.Staff{Username: " FrontDesk ", PasswordHash: "hash", Name: "Rina", Role: domain.RoleFrontDesk, IsActive: true}
	require.NoError(t, repo.Create(ctx, &s))

	got, err := repo.GetByUsername(ctx, "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, "Rina", got.Name)
	assert.Equal(t, domain.RoleFrontDesk, got.Role)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestSource_SatisfiesContract(t *testing.T) {
	var _ source.Source = NewSource(setupTestDB(t), time.UTC)
}
