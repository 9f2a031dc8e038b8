package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
)

type DepthChartRepository struct {
	mu   sync.RWMutex
	rows map[string][]depthchart.Row
}

var _ depthchart.Repository = (*DepthChartRepository)(nil)

func NewDepthChartRepository(rows ...depthchart.Row) *DepthChartRepository {
	r := &DepthChartRepository{rows: make(map[string][]depthchart.Row)}
	for _, row := range rows {
		r.Put(row)
	}
	return r
}

// Put stores a scraped snapshot.
func (r *DepthChartRepository) Put(row depthchart.Row) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row.Slots = maps.Clone(row.Slots)
	r.rows[row.Team] = append(r.rows[row.Team], row)
}

func (r *DepthChartRepository) ListTeams(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.rows))
	for team := range r.rows {
		out = append(out, team)
	}
	sort.Strings(out)
	return out, nil
}

func (r *DepthChartRepository) LatestByTeam(_ context.Context, team string) (depthchart.Row, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rows[team]
	if len(rows) == 0 {
		return depthchart.Row{}, false, nil
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if !row.LastUpdated.Before(latest.LastUpdated) {
			latest = row
		}
	}
	latest.Slots = maps.Clone(latest.Slots)
	return latest, true, nil
}
