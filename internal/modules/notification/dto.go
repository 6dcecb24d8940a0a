package notification

import (
	"time"

	"hoteldash/internal/domain"
	"hoteldash/internal/source"
)

type ListQuery struct {
	Type string `form:"type" validate:"omitempty,oneof=all checkins checkouts housekeeping maintenance payments"`
}

type ListResponse struct {
	Notifications []domain.Notification   `json:"notifications"`
	Summary       Summary                 `json:"summary"`
	Degraded      []source.DegradedSource `json:"degraded"`
	GeneratedAt   time.Time               `json:"generatedAt"`
}

// Badge is the compact summary served to the navigation badge and pushed over websockets.
type Badge struct {
	Summary     Summary                 `json:"summary"`
	Degraded    []source.DegradedSource `json:"degraded"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

type wsMessage struct {
	Event string `json:"event"`
	Data  *Badge `json:"data"`
}
