package ports

import (
	"context"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

// SessionStore persists the issued token outside the core's lifetime so a
// later process can restore the session without re-running the challenge
// flow. At most one record exists at a time.
type SessionStore interface {
	Load(ctx context.Context) (domain.SessionRecord, bool, error)
	Save(ctx context.Context, record domain.SessionRecord) error
	Clear(ctx context.Context) error
}
