package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
)

type PlayerResolution interface {
	Resolve(ctx context.Context, player roster.Identity) (Resolution, error)
}

type GameLogExtraction interface {
	Extract(ctx context.Context, sourceURL, position string, currentSeason int) Extraction
}

// StatsListener is told when a team's stored player stats change.
type StatsListener interface {
	Invalidate(ctx context.Context, team string)
}

type ReconciliationConfig struct {
	// RosterPlayerDelay is slept between players of a roster batch.
	RosterPlayerDelay time.Duration
}

type RefreshResult struct {
	RecordID        int64             `json:"record_id"`
	PlayerName      string            `json:"player_name"`
	Team            string            `json:"team"`
	Position        string            `json:"position"`
	Inserted        bool              `json:"inserted"`
	Verified        bool              `json:"verified"`
	AlreadyVerified bool              `json:"already_verified"`
	Resolution      *Resolution       `json:"resolution,omitempty"`
	SourceURL       string            `json:"source_url,omitempty"`
	StatsUpdated    bool              `json:"stats_updated"`
	Games           int               `json:"games"`
	LogOutcome      ExtractionOutcome `json:"log_outcome,omitempty"`
}

type RosterItemResult struct {
	Index      int            `json:"index"`
	PlayerName string         `json:"player_name"`
	Status     string         `json:"status"`
	Result     *RefreshResult `json:"result,omitempty"`
	Message    string         `json:"message,omitempty"`
}

type RosterResult struct {
	ItemCount       int                `json:"item_count"`
	VerifiedCount   int                `json:"verified_count"`
	UnverifiedCount int                `json:"unverified_count"`
	FailedCount     int                `json:"failed_count"`
	Items           []RosterItemResult `json:"items"`
}

const (
	rosterItemVerified   = "verified"
	rosterItemUnverified = "unverified"
	rosterItemFailed     = "failed"
)

// ReconciliationService drives a roster player through resolution and
// stats refresh, writing every transition to the record store.
type ReconciliationService struct {
	repo       playermeta.Repository
	resolver   PlayerResolution
	extractor  GameLogExtraction
	aggregator *StatAggregator
	listener   StatsListener
	cfg        ReconciliationConfig
	logger     *logging.Logger
	now        func() time.Time
	sleep      func(context.Context, time.Duration) error
}

func NewReconciliationService(
	repo playermeta.Repository,
	resolver PlayerResolution,
	extractor GameLogExtraction,
	aggregator *StatAggregator,
	listener StatsListener,
	cfg ReconciliationConfig,
	logger *logging.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RosterPlayerDelay < 0 {
		cfg.RosterPlayerDelay = 0
	}
	return &ReconciliationService{
		repo:       repo,
		resolver:   resolver,
		extractor:  extractor,
		aggregator: aggregator,
		listener:   listener,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		sleep:      pacing.Sleep,
	}
}

// RefreshPlayer is safe to repeat: a record that is already verified is
// not resolved again, only its stats are refreshed.
func (s *ReconciliationService) RefreshPlayer(ctx context.Context, item roster.WorkItem) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.RefreshPlayer")
	defer span.End()

	if err := item.Validate(); err != nil {
		return RefreshResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if s.repo == nil || s.resolver == nil || s.extractor == nil || s.aggregator == nil {
		return RefreshResult{}, fmt.Errorf("%w: reconciliation is not fully configured", ErrDependencyUnavailable)
	}

	player := item.Identity()
	rec, inserted, err := s.findOrInsert(ctx, player)
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{
		RecordID:        rec.ID,
		PlayerName:      rec.PlayerName,
		Team:            rec.Team,
		Position:        rec.ESPNPosition,
		Inserted:        inserted,
		AlreadyVerified: rec.MatchVerification,
	}

	if !rec.MatchVerification {
		resolution, err := s.resolver.Resolve(ctx, player)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("resolve player=%q: %w", player.Name, err)
		}
		result.Resolution = &resolution

		verification := playermeta.Verification{UpdatedAt: s.now().UTC()}
		if resolution.Matched() {
			verification.FootballReferenceURL = resolution.SourceURL
			verification.MatchVerification = true
			verification.NFLReferencePosition = resolution.Identity.Position
		}
		if err := s.repo.UpdateVerification(ctx, rec.ID, verification); err != nil {
			return RefreshResult{}, fmt.Errorf("%w: update verification id=%d: %w", ErrStore, rec.ID, err)
		}
		rec.FootballReferenceURL = verification.FootballReferenceURL
		rec.MatchVerification = verification.MatchVerification
		rec.NFLReferencePosition = verification.NFLReferencePosition
	}

	result.Verified = rec.MatchVerification
	result.SourceURL = rec.FootballReferenceURL
	if !rec.MatchVerification || strings.TrimSpace(rec.FootballReferenceURL) == "" {
		s.logger.InfoContext(ctx, "player left unverified",
			"player", player.Name,
			"team", player.Team,
			"position", player.Position,
			"record_id", rec.ID,
		)
		return result, nil
	}

	extraction := s.extractor.Extract(ctx, rec.FootballReferenceURL, player.Position, item.CurrentSeason)
	result.LogOutcome = extraction.Outcome
	result.Games = len(extraction.Table.Rows)

	// A failed fetch must not wipe stats written by an earlier run.
	if extraction.Outcome == ExtractionFetchFailed && len(rec.StatsDict) > 0 {
		return result, nil
	}

	stats := playermeta.Stats{
		StatsDict:     s.aggregator.AggregatePlayer(extraction.Table),
		FullPlayerLog: extraction.Table.Records(),
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.repo.UpdateStats(ctx, rec.ID, stats); err != nil {
		return RefreshResult{}, fmt.Errorf("%w: update stats id=%d: %w", ErrStore, rec.ID, err)
	}
	result.StatsUpdated = true
	if s.listener != nil {
		s.listener.Invalidate(ctx, rec.Team)
	}

	s.logger.InfoContext(ctx, "player stats refreshed",
		"player", player.Name,
		"team", player.Team,
		"record_id", rec.ID,
		"games", result.Games,
		"log_outcome", string(extraction.Outcome),
	)
	return result, nil
}

// RefreshRoster processes items one at a time. Invalid items are recorded
// and skipped; a store failure stops the batch and is returned.
func (s *ReconciliationService) RefreshRoster(ctx context.Context, items []roster.WorkItem) (RosterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.RefreshRoster")
	defer span.End()

	result := RosterResult{
		ItemCount: len(items),
		Items:     make([]RosterItemResult, 0, len(items)),
	}
	for i, item := range items {
		if i > 0 && s.cfg.RosterPlayerDelay > 0 {
			if err := s.sleep(ctx, s.cfg.RosterPlayerDelay); err != nil {
				return result, err
			}
		}

		row := RosterItemResult{Index: i, PlayerName: item.PlayerName}
		refreshed, err := s.RefreshPlayer(ctx, item)
		switch {
		case err == nil:
			row.Result = &refreshed
			if refreshed.Verified {
				row.Status = rosterItemVerified
				result.VerifiedCount++
			} else {
				row.Status = rosterItemUnverified
				result.UnverifiedCount++
			}
		case errors.Is(err, ErrInvalidInput):
			row.Status = rosterItemFailed
			row.Message = err.Error()
			result.FailedCount++
			s.logger.WarnContext(ctx, "skipping invalid roster item", "index", i, "error", err)
		default:
			row.Status = rosterItemFailed
			row.Message = err.Error()
			result.FailedCount++
			result.Items = append(result.Items, row)
			return result, err
		}
		result.Items = append(result.Items, row)
	}
	return result, nil
}

// GetPlayer reads one stored record.
func (s *ReconciliationService) GetPlayer(ctx context.Context, id int64) (playermeta.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.GetPlayer")
	defer span.End()

	if id <= 0 {
		return playermeta.Record{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}
	rec, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return playermeta.Record{}, fmt.Errorf("%w: get player id=%d: %w", ErrStore, id, err)
	}
	if !ok {
		return playermeta.Record{}, fmt.Errorf("%w: player id=%d", ErrNotFound, id)
	}
	return rec, nil
}

// findOrInsert picks the exact (name, team, position) record among those
// sharing the name, inserting a first sighting when none matches.
func (s *ReconciliationService) findOrInsert(ctx context.Context, player roster.Identity) (playermeta.Record, bool, error) {
	records, err := s.repo.ListByName(ctx, player.Name)
	if err != nil {
		return playermeta.Record{}, false, fmt.Errorf("%w: list players name=%q: %w", ErrStore, player.Name, err)
	}
	for _, rec := range records {
		if rec.SameIdentity(player.Name, player.Team, player.Position) {
			return rec, false, nil
		}
	}

	rec, err := s.repo.Insert(ctx, playermeta.NewRecord{
		PlayerName:   player.Name,
		Team:         player.Team,
		ESPNPosition: player.Position,
		Status:       string(player.Status),
		UpdatedAt:    s.now().UTC(),
	})
	if err != nil {
		return playermeta.Record{}, false, fmt.Errorf("%w: insert player name=%q: %w", ErrStore, player.Name, err)
	}
	s.logger.InfoContext(ctx, "player first sighting recorded",
		"player", player.Name,
		"team", player.Team,
		"position", player.Position,
		"record_id", rec.ID,
	)
	return rec, true, nil
}
