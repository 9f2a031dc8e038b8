// Package cache decorates repositories with read-through caching.
package cache

import (
	"context"
	"maps"
	"strconv"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	basecache "github.com/riskibarqy/antelope-reconciler/internal/platform/cache"
)

const (
	playerByIDPrefix       = "player:id:"
	playerVerifiedByPrefix = "player:verified-team:"
)

type cachedPlayerByID struct {
	value  playermeta.Record
	exists bool
}

// PlayerMetadataRepository caches the read endpoints' lookups. Reads on the
// reconciliation path (by name, last update, team list) always hit next.
type PlayerMetadataRepository struct {
	next     playermeta.Repository
	byID     *basecache.Store[cachedPlayerByID]
	verified *basecache.Store[[]playermeta.Record]
}

var _ playermeta.Repository = (*PlayerMetadataRepository)(nil)

func NewPlayerMetadataRepository(next playermeta.Repository, ttl time.Duration) *PlayerMetadataRepository {
	return &PlayerMetadataRepository{
		next:     next,
		byID:     basecache.NewStore[cachedPlayerByID](ttl),
		verified: basecache.NewStore[[]playermeta.Record](ttl),
	}
}

func (r *PlayerMetadataRepository) ListByName(ctx context.Context, name string) ([]playermeta.Record, error) {
	return r.next.ListByName(ctx, name)
}

func (r *PlayerMetadataRepository) GetByID(ctx context.Context, id int64) (playermeta.Record, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, playerByIDPrefix+strconv.FormatInt(id, 10), func(ctx context.Context) (cachedPlayerByID, error) {
		rec, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: rec, exists: exists}, nil
	})
	if err != nil {
		return playermeta.Record{}, false, err
	}
	return cloneRecord(cached.value), cached.exists, nil
}

func (r *PlayerMetadataRepository) Insert(ctx context.Context, rec playermeta.NewRecord) (playermeta.Record, error) {
	out, err := r.next.Insert(ctx, rec)
	if err != nil {
		return out, err
	}
	r.byID.Invalidate(ctx, playerByIDPrefix+strconv.FormatInt(out.ID, 10))
	return out, nil
}

func (r *PlayerMetadataRepository) UpdateVerification(ctx context.Context, id int64, v playermeta.Verification) error {
	if err := r.next.UpdateVerification(ctx, id, v); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *PlayerMetadataRepository) UpdateStats(ctx context.Context, id int64, s playermeta.Stats) error {
	if err := r.next.UpdateStats(ctx, id, s); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *PlayerMetadataRepository) ListVerifiedByTeam(ctx context.Context, team string) ([]playermeta.Record, error) {
	items, err := r.verified.GetOrLoad(ctx, playerVerifiedByPrefix+team, func(ctx context.Context) ([]playermeta.Record, error) {
		return r.next.ListVerifiedByTeam(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	out := make([]playermeta.Record, 0, len(items))
	for _, item := range items {
		out = append(out, cloneRecord(item))
	}
	return out, nil
}

func (r *PlayerMetadataRepository) ListTeams(ctx context.Context) ([]string, error) {
	return r.next.ListTeams(ctx)
}

func (r *PlayerMetadataRepository) LastUpdatedAt(ctx context.Context, name, team, position string) (time.Time, bool, error) {
	return r.next.LastUpdatedAt(ctx, name, team, position)
}

// invalidate drops id and every team listing; a write does not carry the
// record's team.
func (r *PlayerMetadataRepository) invalidate(ctx context.Context, id int64) {
	r.byID.Invalidate(ctx, playerByIDPrefix+strconv.FormatInt(id, 10))
	r.verified.Invalidate(ctx, playerVerifiedByPrefix+"*")
}

func cloneRecord(rec playermeta.Record) playermeta.Record {
	rec.StatsDict = maps.Clone(rec.StatsDict)
	if rec.FullPlayerLog != nil {
		logs := make([]map[string]any, len(rec.FullPlayerLog))
		for i, row := range rec.FullPlayerLog {
			logs[i] = maps.Clone(row)
		}
		rec.FullPlayerLog = logs
	}
	return rec
}
