package notification

import (
	"context"

	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

// Loader fetches the entity snapshot the deriver works on.
type Loader interface {
	Load(ctx context.Context, sess *session.Session, req source.Request) (source.Snapshot, error)
}

// SummaryCache keeps the latest polled badge.
type SummaryCache interface {
	Get(ctx context.Context) (*Badge, error)
	Set(ctx context.Context, b *Badge) error
}

// Broadcaster pushes a message to every connected subscriber.
type Broadcaster interface {
	Broadcast(message any) int
}
