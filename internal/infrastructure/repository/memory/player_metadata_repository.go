package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
)

type PlayerMetadataRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records []playermeta.Record
}

var _ playermeta.Repository = (*PlayerMetadataRepository)(nil)

func NewPlayerMetadataRepository(records ...playermeta.Record) *PlayerMetadataRepository {
	r := &PlayerMetadataRepository{}
	for _, rec := range records {
		if rec.ID > r.nextID {
			r.nextID = rec.ID
		}
		r.records = append(r.records, cloneRecord(rec))
	}
	return r
}

func (r *PlayerMetadataRepository) ListByName(_ context.Context, name string) ([]playermeta.Record, error) {
	return r.filter(func(rec playermeta.Record) bool { return rec.PlayerName == name }), nil
}

func (r *PlayerMetadataRepository) GetByID(_ context.Context, id int64) (playermeta.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return cloneRecord(r.records[i]), true, nil
	}
	return playermeta.Record{}, false, nil
}

func (r *PlayerMetadataRepository) Insert(_ context.Context, in playermeta.NewRecord) (playermeta.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec := playermeta.Record{
		ID:           r.nextID,
		PlayerName:   in.PlayerName,
		Team:         in.Team,
		ESPNPosition: in.ESPNPosition,
		Status:       in.Status,
		UpdatedAt:    in.UpdatedAt,
	}
	r.records = append(r.records, rec)
	return cloneRecord(rec), nil
}

func (r *PlayerMetadataRepository) UpdateVerification(_ context.Context, id int64, v playermeta.Verification) error {
	return r.update(id, func(rec *playermeta.Record) {
		rec.FootballReferenceURL = v.FootballReferenceURL
		rec.MatchVerification = v.MatchVerification
		rec.NFLReferencePosition = v.NFLReferencePosition
		rec.UpdatedAt = v.UpdatedAt
	})
}

func (r *PlayerMetadataRepository) UpdateStats(_ context.Context, id int64, s playermeta.Stats) error {
	return r.update(id, func(rec *playermeta.Record) {
		rec.StatsDict = maps.Clone(s.StatsDict)
		rec.FullPlayerLog = append([]map[string]any(nil), s.FullPlayerLog...)
		rec.UpdatedAt = s.UpdatedAt
	})
}

func (r *PlayerMetadataRepository) ListVerifiedByTeam(_ context.Context, team string) ([]playermeta.Record, error) {
	return r.filter(func(rec playermeta.Record) bool {
		return rec.Team == team && rec.MatchVerification
	}), nil
}

func (r *PlayerMetadataRepository) ListTeams(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range r.records {
		if _, ok := seen[rec.Team]; ok {
			continue
		}
		seen[rec.Team] = struct{}{}
		out = append(out, rec.Team)
	}
	sort.Strings(out)
	return out, nil
}

func (r *PlayerMetadataRepository) LastUpdatedAt(_ context.Context, name, team, position string) (time.Time, bool, error) {
	var (
		latest time.Time
		found  bool
	)
	for _, rec := range r.filter(func(rec playermeta.Record) bool { return rec.SameIdentity(name, team, position) }) {
		if !found || rec.UpdatedAt.After(latest) {
			latest = rec.UpdatedAt
			found = true
		}
	}
	return latest, found, nil
}

func (r *PlayerMetadataRepository) filter(keep func(playermeta.Record) bool) []playermeta.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playermeta.Record, 0)
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

func (r *PlayerMetadataRepository) update(id int64, apply func(*playermeta.Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("player metadata id=%d: no row updated", id)
	}
	apply(&r.records[i])
	return nil
}

func (r *PlayerMetadataRepository) indexOf(id int64) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneRecord(rec playermeta.Record) playermeta.Record {
	rec.StatsDict = maps.Clone(rec.StatsDict)
	rec.FullPlayerLog = append([]map[string]any(nil), rec.FullPlayerLog...)
	return rec
}
