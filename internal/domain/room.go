package domain

import "github.com/shopspring/decimal"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomDirty       RoomStatus = "dirty"
	RoomMaintenance RoomStatus = "maintenance"
	RoomBlocked     RoomStatus = "blocked"
)

// RoomStatuses lists every known status in display order.
var RoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomDirty, RoomMaintenance, RoomBlocked}

type Room struct {
	ID           string          `json:"id"`
	Number       string          `json:"room_number"`
	Type         string          `json:"room_type"`
	Floor        int             `json:"floor"`
	MaxOccupancy int             `json:"max_occupancy"`
	BaseRate     decimal.Decimal `json:"base_rate"`
	Status       RoomStatus      `json:"status"`
}
