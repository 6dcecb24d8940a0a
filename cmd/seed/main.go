package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hoteldash/internal/database"
	"hoteldash/internal/domain"
	"hoteldash/internal/modules/auth"
	"hoteldash/internal/pkg/dates"
	"hoteldash/internal/pkg/logger"
	"hoteldash/internal/repository"
)

type roomSpec struct {
	number string
	kind   string
	floor  int
	rate   int64
	status domain.RoomStatus
}

var roomSpecs = []roomSpec{
	{"101", "standard", 1, 650000, domain.RoomOccupied},
	{"102", "standard", 1, 650000, domain.RoomAvailable},
	{"103", "standard", 1, 650000, domain.RoomDirty},
	{"104", "standard", 1, 650000, domain.RoomOccupied},
	{"201", "deluxe", 2, 950000, domain.RoomOccupied},
	{"202", "deluxe", 2, 950000, domain.RoomAvailable},
	{"203", "deluxe", 2, 950000, domain.RoomMaintenance},
	{"204", "deluxe", 2, 950000, domain.RoomOccupied},
	{"301", "suite", 3, 1850000, domain.RoomAvailable},
	{"302", "suite", 3, 1850000, domain.RoomBlocked},
}

type staffSpec struct {
	username, password, name string
	role                     domain.StaffRole
	department               string
}

var staffSpecs = []staffSpec{
	{"admin", "admin123", "Hotel Admin", domain.RoleAdmin, ""},
	{"manager", "manager123", "Dewi Lestari", domain.RoleManager, ""},
	{"frontdesk", "frontdesk123", "Budi Santoso", domain.RoleFrontDesk, "front_office"},
	{"housekeeping", "housekeeping123", "Sri Wahyuni", domain.RoleHousekeeping, "housekeeping"},
}

func main() {
	_ = godotenv.Load()
	logger.Init("info", true)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotel.db"
	}
	loc := time.UTC
	if tz := os.Getenv("HOTEL_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", tz).Msg("invalid HOTEL_TIMEZONE")
		}
		loc = l
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}

	log.Info().Msg("running AutoMigrate")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	log.Info().Msg("cleaning old data")
	for _, table := range []string{"payments", "housekeeping_tasks", "reservations", "guests", "rooms", "staff"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	ctx := context.Background()
	now := time.Now().In(loc)
	today := dates.Day(now, loc)
	day := func(n int) time.Time { return today.AddDate(0, 0, n) }

	staffRepo := repository.NewStaffRepository(db)
	for _, s := range staffSpecs {
		hash, err := auth.HashPassword(s.password)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		member := &domain.Staff{Username: s.username, PasswordHash: hash, Name: s.name, Role: s.role, Department: s.department, IsActive: true}
		if err := staffRepo.Create(ctx, member); err != nil {
			log.Fatal().Err(err).Msg("create staff")
		}
		log.Info().Str("username", s.username).Str("password", s.password).Msg("staff created")
	}

	roomRepo := repository.NewRoomRepository(db)
	for _, r := range roomSpecs {
		room := &domain.Room{Number: r.number, Type: r.kind, Floor: r.floor, MaxOccupancy: 2, BaseRate: decimal.NewFromInt(r.rate), Status: r.status}
		if r.kind == "suite" {
			room.MaxOccupancy = 4
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			log.Fatal().Err(err).Msg("create room")
		}
	}
	log.Info().Int("count", len(roomSpecs)).Msg("rooms created")

	resRepo := repository.NewReservationRepository(db, loc)
	type stay struct {
		guest, phone, room string
		in, nights         int
		status             domain.ReservationStatus
		paidShare          int64
	}
	stays := []stay{
		{"Andi Wijaya", "+62 812 1000 0001", "101", -2, 3, domain.ReservationCheckedIn, 100},
		{"Maria Gonzales", "+62 812 1000 0002", "104", -1, 1, domain.ReservationCheckedIn, 50},
		{"Kenji Tanaka", "+62 812 1000 0003", "201", -4, 4, domain.ReservationCheckedIn, 0},
		{"Putri Ayu", "+62 812 1000 0004", "204", -3, 5, domain.ReservationCheckedIn, 100},
		{"Liam O'Brien", "+62 812 1000 0005", "102", 0, 2, domain.ReservationConfirmed, 0},
		{"Sofia Rossi", "+62 812 1000 0006", "202", -1, 3, domain.ReservationConfirmed, 50},
		{"Rahmat Hidayat", "+62 812 1000 0007", "301", 2, 2, domain.ReservationConfirmed, 0},
		{"Emma Schmidt", "+62 812 1000 0008", "103", -6, 2, domain.ReservationCheckedOut, 100},
		{"Agus Salim", "+62 812 1000 0009", "202", -12, 3, domain.ReservationCheckedOut, 70},
		{"Nadia Putri", "+62 812 1000 0010", "102", -5, 1, domain.ReservationCancelled, 0},
		{"Chen Wei", "+62 812 1000 0011", "203", -3, 2, domain.ReservationNoShow, 0},
	}

	payRepo := repository.NewPaymentRepository(db)
	rates := map[string]int64{}
	for _, r := range roomSpecs {
		rates[r.number] = r.rate
	}
	for i, s := range stays {
		rate := decimal.NewFromInt(rates[s.room])
		total := rate.Mul(decimal.NewFromInt(int64(s.nights)))
		res := &domain.Reservation{
			ReservationNumber: fmt.Sprintf("RSV-%s-%03d", today.Format("0601"), i+1),
			Guest:             domain.Guest{Name: s.guest, Phone: s.phone},
			RoomNumber:        s.room,
			CheckInDate:       day(s.in),
			CheckOutDate:      day(s.in + s.nights),
			Nights:            s.nights,
			RoomRate:          rate,
			TotalAmount:       total,
			PaidAmount:        decimal.Zero,
			Status:            s.status,
			PaymentStatus:     domain.PaymentStatusPending,
		}
		if err := resRepo.Create(ctx, res); err != nil {
			log.Fatal().Err(err).Msg("create reservation")
		}

		paid := total.Mul(decimal.NewFromInt(s.paidShare)).Div(decimal.NewFromInt(100)).Round(0)
		if paid.IsPositive() {
			payType, method := domain.PaymentFull, domain.MethodCard
			status := domain.PaymentStatusPaid
			if s.paidShare < 100 {
				payType, method, status = domain.PaymentDeposit, domain.MethodBankTransfer, domain.PaymentStatusPartial
			}
			tx := fmt.Sprintf("TX-%06d", 100000+i)
			if err := payRepo.Create(ctx, &domain.Payment{
				ReservationID: res.ID,
				Amount:        paid,
				Method:        method,
				Type:          payType,
				Status:        domain.PaymentCompleted,
				TransactionID: &tx,
				ProcessedBy:   "frontdesk",
				CreatedAt:     day(s.in).Add(14 * time.Hour),
			}); err != nil {
				log.Fatal().Err(err).Msg("create payment")
			}
			if err := resRepo.UpdatePaidAmount(ctx, res.ID, paid, status); err != nil {
				log.Fatal().Err(err).Msg("update paid amount")
			}
		}

		// An online top-up attempt that bounced, for in-house guests with a balance.
		if s.status == domain.ReservationCheckedIn && paid.LessThan(total) {
			if err := payRepo.Create(ctx, &domain.Payment{
				ReservationID: res.ID,
				Amount:        total.Sub(paid),
				Method:        domain.MethodOnline,
				Type:          domain.PaymentPartial,
				Status:        domain.PaymentFailed,
				ProcessedBy:   "online",
				CreatedAt:     now.Add(-6 * time.Hour),
			}); err != nil {
				log.Fatal().Err(err).Msg("create failed payment")
			}
		}
	}
	log.Info().Int("count", len(stays)).Msg("reservations created")

	taskRepo := repository.NewTaskRepository(db)
	started := now.Add(-90 * time.Minute)
	tasks := []domain.HousekeepingTask{
		{RoomNumber: "103", TaskType: domain.TaskCleaning, Priority: domain.TaskPriorityNormal, Status: domain.TaskPending, AssignedTo: "Sri Wahyuni", Description: "Checkout clean", CreatedAt: now.Add(-30 * time.Hour)},
		{RoomNumber: "102", TaskType: domain.TaskCleaning, Priority: domain.TaskPriorityHigh, Status: domain.TaskInProgress, AssignedTo: "Sri Wahyuni", Description: "Prepare for arrival", CreatedAt: now.Add(-2 * time.Hour), StartedAt: &started},
		{RoomNumber: "203", TaskType: domain.TaskMaintenance, Priority: domain.TaskPriorityUrgent, Status: domain.TaskPending, Description: "AC leaking", CreatedAt: now.Add(-1 * time.Hour)},
		{RoomNumber: "301", TaskType: domain.TaskInspection, Priority: domain.TaskPriorityLow, Status: domain.TaskPending, Description: "Pre-arrival inspection", CreatedAt: now.Add(-5 * time.Hour)},
		{RoomNumber: "202", TaskType: domain.TaskDeepClean, Priority: domain.TaskPriorityNormal, Status: domain.TaskCompleted, Description: "Monthly deep clean", CreatedAt: now.Add(-48 * time.Hour)},
	}
	for i := range tasks {
		if tasks[i].Status == domain.TaskCompleted {
			done := now.Add(-40 * time.Hour)
			tasks[i].StartedAt, tasks[i].CompletedAt = &done, &done
		}
		tasks[i].EstimatedMinutes = 45
		tasks[i].CreatedBy = "frontdesk"
		if err := taskRepo.Create(ctx, &tasks[i], ""); err != nil {
			log.Fatal().Err(err).Msg("create task")
		}
	}
	log.Info().Int("count", len(tasks)).Msg("housekeeping tasks created")

	log.Info().Str("dsn", dsn).Msg("seed completed")
}
