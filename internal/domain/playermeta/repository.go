package playermeta

import (
	"context"
	"time"
)

// Repository is the shared player state store.
type Repository interface {
	ListByName(ctx context.Context, name string) ([]Record, error)
	GetByID(ctx context.Context, id int64) (Record, bool, error)
	Insert(ctx context.Context, rec NewRecord) (Record, error)
	UpdateVerification(ctx context.Context, id int64, v Verification) error
	UpdateStats(ctx context.Context, id int64, s Stats) error
	ListVerifiedByTeam(ctx context.Context, team string) ([]Record, error)
	ListTeams(ctx context.Context) ([]string, error)
	// LastUpdatedAt returns the freshest updated_at for (name, team, position).
	LastUpdatedAt(ctx context.Context, name, team, position string) (time.Time, bool, error)
}
