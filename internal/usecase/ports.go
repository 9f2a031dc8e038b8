package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
)

// IdentityFetcher reads the identity block of a candidate player page.
type IdentityFetcher interface {
	FetchIdentity(ctx context.Context, url string) (identity.Scraped, error)
}

// GameLogFetcher reads the raw game log table of a player page.
type GameLogFetcher interface {
	FetchGameLog(ctx context.Context, url string) (gamelog.RawTable, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}
