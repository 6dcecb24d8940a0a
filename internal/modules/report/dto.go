package report

import (
	"time"

	"github.com/shopspring/decimal"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
	"hoteldash/internal/source"
)

const (
	TypeDashboard = "dashboard"
	TypeRooms     = "rooms"
)

type Query struct {
	Type     string `form:"type" validate:"omitempty,oneof=dashboard rooms"`
	FromDate string `form:"fromDate" validate:"omitempty,isodate"`
	ToDate   string `form:"toDate" validate:"omitempty,isodate"`
}

type ReservationView struct {
	ID                 string          `json:"id"`
	ConfirmationNumber string          `json:"confirmationNumber"`
	GuestName          string          `json:"guestName"`
	RoomNumber         string          `json:"roomNumber"`
	CheckInDate        string          `json:"checkInDate"`
	CheckOutDate       string          `json:"checkOutDate"`
	Nights             int             `json:"nights"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Status             string          `json:"status"`
}

type CollectionView struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// DashboardView is the rounded JSON form of Dashboard.
type DashboardView struct {
	FromDate           string            `json:"fromDate"`
	ToDate             string            `json:"toDate"`
	DaysInRange        int               `json:"daysInRange"`
	OccupiedRooms      int               `json:"occupiedRooms"`
	TotalRooms         int               `json:"totalRooms"`
	OccupancyRate      int64             `json:"occupancyRate"`
	TodayCheckIns      int               `json:"todayCheckIns"`
	TodayCheckOuts     int               `json:"todayCheckOuts"`
	Revenue            decimal.Decimal   `json:"revenue"`
	RoomNights         int               `json:"roomNights"`
	ADR                decimal.Decimal   `json:"adr"`
	RevPAR             decimal.Decimal   `json:"revpar"`
	RecentReservations []ReservationView `json:"recentReservations"`
	Collections        []CollectionView  `json:"collections"`
}

type DashboardResponse struct {
	Dashboard   DashboardView           `json:"dashboard"`
	Degraded    []source.DegradedSource `json:"degraded"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

type RoomsResponse struct {
	Rooms       Rooms                   `json:"rooms"`
	Degraded    []source.DegradedSource `json:"degraded"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// NewDashboardView rounds money to places and percentages to whole numbers.
func NewDashboardView(d Dashboard, places int32) DashboardView {
	v := DashboardView{
		FromDate:           dates.Format(d.Range.From),
		ToDate:             dates.Format(d.Range.To),
		DaysInRange:        d.DaysInRange,
		OccupiedRooms:      d.OccupiedRooms,
		TotalRooms:         d.TotalRooms,
		OccupancyRate:      d.OccupancyRate.Round(0).IntPart(),
		TodayCheckIns:      d.TodayCheckIns,
		TodayCheckOuts:     d.TodayCheckOuts,
		Revenue:            d.Revenue.Round(places),
		RoomNights:         d.RoomNights,
		ADR:                d.ADR.Round(places),
		RevPAR:             d.RevPAR.Round(places),
		RecentReservations: make([]ReservationView, 0, len(d.RecentReservations)),
		Collections:        make([]CollectionView, 0, len(d.Collections)),
	}
	for _, r := range d.RecentReservations {
		v.RecentReservations = append(v.RecentReservations, reservationView(r, places))
	}
	for _, c := range d.Collections {
		v.Collections = append(v.Collections, CollectionView{
			Method: string(c.Method),
			Amount: c.Amount.Round(places),
			Count:  c.Count,
		})
	}
	return v
}

func reservationView(r domain.Reservation, places int32) ReservationView {
	return ReservationView{
		ID:                 r.ID,
		ConfirmationNumber: r.ReservationNumber,
		GuestName:          r.Guest.Name,
		RoomNumber:         r.RoomNumber,
		CheckInDate:        dates.Format(r.CheckInDate),
		CheckOutDate:       dates.Format(r.CheckOutDate),
		Nights:             r.StayNights(),
		TotalAmount:        r.TotalAmount.Round(places),
		Status:             string(r.Status),
	}
}
