package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/efficiency"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/cache"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

type TeamEfficiency struct {
	Team        string                        `json:"team"`
	PlayerCount int                           `json:"player_count"`
	Positions   efficiency.TeamEfficiency     `json:"positions"`
	Rollups     map[string]map[string]float64 `json:"rollups"`
	ComputedAt  time.Time                     `json:"computed_at"`
}

type TeamEfficiencyConfig struct {
	Workers int
}

// TeamEfficiencyService aggregates verified player stats into team
// efficiencies. Unverified records never contribute.
type TeamEfficiencyService struct {
	repo       playermeta.Repository
	aggregator *StatAggregator
	cache      *cache.Store[TeamEfficiency]
	cfg        TeamEfficiencyConfig
	logger     *logging.Logger
	now        func() time.Time
}

const teamEfficiencyCachePrefix = "team-efficiency:"

// NewTeamEfficiencyService accepts a nil store, which disables caching.
func NewTeamEfficiencyService(
	repo playermeta.Repository,
	aggregator *StatAggregator,
	store *cache.Store[TeamEfficiency],
	cfg TeamEfficiencyConfig,
	logger *logging.Logger,
) *TeamEfficiencyService {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamEfficiencyService{
		repo:       repo,
		aggregator: aggregator,
		cache:      store,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamEfficiencyService) Compute(ctx context.Context, team string) (TeamEfficiency, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamEfficiencyService.Compute")
	defer span.End()

	team = roster.NormalizeTeam(strings.TrimSpace(team))
	if team == "" {
		return TeamEfficiency{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if s.cache == nil {
		return s.compute(ctx, team)
	}
	return s.cache.GetOrLoad(ctx, teamEfficiencyCachePrefix+team, func(ctx context.Context) (TeamEfficiency, error) {
		return s.compute(ctx, team)
	})
}

// ComputeAll computes every stored team concurrently. Teams without
// verified players are left out.
func (s *TeamEfficiencyService) ComputeAll(ctx context.Context) ([]TeamEfficiency, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamEfficiencyService.ComputeAll")
	defer span.End()

	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %w", ErrStore, err)
	}

	p := pool.NewWithResults[*TeamEfficiency]().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.Workers).
		WithCancelOnError()
	for _, team := range teams {
		p.Go(func(ctx context.Context) (*TeamEfficiency, error) {
			eff, err := s.Compute(ctx, team)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, nil
				}
				return nil, err
			}
			return &eff, nil
		})
	}
	computed, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]TeamEfficiency, 0, len(computed))
	for _, eff := range computed {
		if eff != nil {
			out = append(out, *eff)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out, nil
}

// Invalidate drops the cached efficiency of team.
func (s *TeamEfficiencyService) Invalidate(ctx context.Context, team string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, teamEfficiencyCachePrefix+roster.NormalizeTeam(strings.TrimSpace(team)))
}

func (s *TeamEfficiencyService) compute(ctx context.Context, team string) (TeamEfficiency, error) {
	records, err := s.repo.ListVerifiedByTeam(ctx, team)
	if err != nil {
		return TeamEfficiency{}, fmt.Errorf("%w: list verified players team=%s: %w", ErrStore, team, err)
	}

	players := make([]efficiency.PlayerStats, 0, len(records))
	for _, rec := range records {
		if !rec.Aggregatable() {
			continue
		}
		players = append(players, efficiency.PlayerStats{
			Position: roster.PositionGroup(rec.ESPNPosition),
			Stats:    efficiency.StatLine(rec.StatsDict),
		})
	}
	if len(players) == 0 {
		return TeamEfficiency{}, fmt.Errorf("%w: no verified players for team=%s", ErrNotFound, team)
	}

	positions := s.aggregator.AggregateTeam(players)
	s.logger.DebugContext(ctx, "team efficiency computed", "team", team, "players", len(players))
	return TeamEfficiency{
		Team:        team,
		PlayerCount: len(players),
		Positions:   positions,
		Rollups:     efficiency.Rollups(positions),
		ComputedAt:  s.now().UTC(),
	}, nil
}
