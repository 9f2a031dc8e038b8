package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/id"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

const (
	VerifyPlayerJobPath = "/v1/internal/jobs/verify-player"
	depthChartSource    = "depth_chart"
)

type EnqueueConfig struct {
	RecentWindow time.Duration
	Workers      int
	Stagger      time.Duration
}

type EnqueueInput struct {
	Teams []string
	// Force ignores the recent-refresh window.
	Force bool
}

type EnqueueResult struct {
	RunID          string               `json:"run_id"`
	Season         int                  `json:"season"`
	TeamCount      int                  `json:"team_count"`
	CandidateCount int                  `json:"candidate_count"`
	QueuedCount    int                  `json:"queued_count"`
	SkippedRecent  int                  `json:"skipped_recent"`
	Teams          []EnqueueTeamSummary `json:"teams"`
}

type EnqueueTeamSummary struct {
	Team    string `json:"team"`
	Queued  int    `json:"queued"`
	Skipped int    `json:"skipped"`
	Message string `json:"message,omitempty"`
}

// EnqueueService fans the latest depth charts out into one verify-player
// job per listed player.
type EnqueueService struct {
	depthRepo  depthchart.Repository
	playerRepo playermeta.Repository
	queue      JobQueue
	ids        id.Generator
	cfg        EnqueueConfig
	logger     *logging.Logger
	now        func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewEnqueueService(
	depthRepo depthchart.Repository,
	playerRepo playermeta.Repository,
	queue JobQueue,
	ids id.Generator,
	cfg EnqueueConfig,
	logger *logging.Logger,
) *EnqueueService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if ids == nil {
		ids = id.NewRandomGenerator("run-")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.RecentWindow < 0 {
		cfg.RecentWindow = 0
	}
	return &EnqueueService{
		depthRepo:  depthRepo,
		playerRepo: playerRepo,
		queue:      queue,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

type teamScan struct {
	team    string
	items   []roster.WorkItem
	skipped int
	err     error
}

func (s *EnqueueService) EnqueuePlayers(ctx context.Context, input EnqueueInput) (EnqueueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnqueueService.EnqueuePlayers")
	defer span.End()

	if s.depthRepo == nil || s.playerRepo == nil {
		return EnqueueResult{}, fmt.Errorf("%w: enqueue is not fully configured", ErrDependencyUnavailable)
	}

	teams, err := s.pickTeams(ctx, input.Teams)
	if err != nil {
		return EnqueueResult{}, err
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return EnqueueResult{}, fmt.Errorf("generate run id: %w", err)
	}
	now := s.now().UTC()
	result := EnqueueResult{
		RunID:     runID,
		Season:    gamelog.CurrentSeason(now),
		TeamCount: len(teams),
		Teams:     make([]EnqueueTeamSummary, 0, len(teams)),
	}
	if len(teams) == 0 {
		return result, nil
	}

	scans := make([]teamScan, len(teams))
	workers := s.cfg.Workers
	if workers > len(teams) {
		workers = len(teams)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return EnqueueResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, team := range teams {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			scans[i] = s.scanTeam(ctx, team, runID, result.Season, now, input.Force)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return EnqueueResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	queued := 0
	for _, scan := range scans {
		summary := EnqueueTeamSummary{Team: scan.team, Skipped: scan.skipped}
		result.SkippedRecent += scan.skipped
		if scan.err != nil {
			summary.Message = scan.err.Error()
			result.Teams = append(result.Teams, summary)
			s.logger.WarnContext(ctx, "depth chart scan failed", "team", scan.team, "error", scan.err)
			continue
		}
		result.CandidateCount += len(scan.items) + scan.skipped

		for _, item := range scan.items {
			delay := time.Duration(queued) * s.cfg.Stagger
			if err := s.queue.Enqueue(ctx, VerifyPlayerJobPath, item, delay, dedupID(runID, item)); err != nil {
				return result, fmt.Errorf("enqueue verify-player team=%s player=%q: %w", item.TeamName, item.PlayerName, err)
			}
			queued++
			summary.Queued++
		}
		result.Teams = append(result.Teams, summary)
	}
	result.QueuedCount = queued

	s.logger.InfoContext(ctx, "verify-player jobs enqueued",
		"run_id", runID,
		"teams", result.TeamCount,
		"queued", result.QueuedCount,
		"skipped_recent", result.SkippedRecent,
	)
	return result, nil
}

func (s *EnqueueService) scanTeam(ctx context.Context, team, runID string, season int, now time.Time, force bool) teamScan {
	scan := teamScan{team: team}
	row, ok, err := s.depthRepo.LatestByTeam(ctx, team)
	if err != nil {
		scan.err = fmt.Errorf("latest depth chart: %w", err)
		return scan
	}
	if !ok {
		scan.err = fmt.Errorf("%w: no depth chart for team", ErrNotFound)
		return scan
	}

	for _, entry := range row.Entries() {
		if !force && s.cfg.RecentWindow > 0 {
			last, found, err := s.playerRepo.LastUpdatedAt(ctx, entry.Name, team, entry.Position)
			if err != nil {
				scan.err = fmt.Errorf("last update of %q: %w", entry.Name, err)
				return scan
			}
			if found && now.Sub(last) < s.cfg.RecentWindow {
				scan.skipped++
				continue
			}
		}

		status := string(entry.Status)
		if status == "" {
			status = string(roster.StatusHealthy)
		}
		scan.items = append(scan.items, roster.WorkItem{
			PlayerName:     entry.Name,
			TeamName:       team,
			PlayerPosition: entry.Position,
			CurrentSeason:  season,
			Status:         status,
			Source:         depthChartSource,
			DepthRowKey:    row.Key,
			RunID:          runID,
		})
	}
	return scan
}

func (s *EnqueueService) pickTeams(ctx context.Context, requested []string) ([]string, error) {
	seen := make(map[string]struct{}, len(requested))
	teams := make([]string, 0, len(requested))
	for _, raw := range requested {
		team := roster.NormalizeTeam(strings.TrimSpace(raw))
		if team == "" {
			continue
		}
		if _, dup := seen[team]; dup {
			continue
		}
		seen[team] = struct{}{}
		teams = append(teams, team)
	}
	if len(teams) > 0 {
		sort.Strings(teams)
		return teams, nil
	}

	all, err := s.depthRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list depth chart teams: %w", err)
	}
	sort.Strings(all)
	return all, nil
}

func dedupID(runID string, item roster.WorkItem) string {
	raw := strings.Join([]string{"verify", runID, item.TeamName, item.PlayerPosition, item.PlayerName}, "-")
	return dedupUnsafeCharRegex.ReplaceAllString(raw, "_")
}
