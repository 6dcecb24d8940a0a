package report

import (
	"context"

	"hoteldash/internal/session"
	"hoteldash/internal/source"
)

type Loader interface {
	Load(ctx context.Context, sess *session.Session, req source.Request) (source.Snapshot, error)
}
