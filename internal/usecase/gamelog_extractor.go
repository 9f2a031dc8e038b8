package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
)

type ExtractionOutcome string

const (
	ExtractionGames       ExtractionOutcome = "games"
	ExtractionNoGames     ExtractionOutcome = "no_games"
	ExtractionFetchFailed ExtractionOutcome = "fetch_failed"
)

// Extraction is the result of reading one player's game log. Table is
// always usable; Outcome tells an empty history apart from a failed fetch.
type Extraction struct {
	Table   gamelog.Table
	Outcome ExtractionOutcome
	Err     error
}

type GameLogExtractor struct {
	fetcher GameLogFetcher
	pacer   pacing.Pacer
	schema  *statschema.Schema
	logger  *logging.Logger
}

func NewGameLogExtractor(fetcher GameLogFetcher, pacer pacing.Pacer, schema *statschema.Schema, logger *logging.Logger) *GameLogExtractor {
	if pacer == nil {
		pacer = pacing.Noop
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GameLogExtractor{
		fetcher: fetcher,
		pacer:   pacer,
		schema:  schema,
		logger:  logger,
	}
}

// Extract fetches, cleans and season-filters the game log at sourceURL.
// Rows older than the season before currentSeason are dropped.
func (e *GameLogExtractor) Extract(ctx context.Context, sourceURL, position string, currentSeason int) Extraction {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogExtractor.Extract")
	defer span.End()

	if strings.TrimSpace(sourceURL) == "" {
		return e.failed(ctx, sourceURL, position, errors.New("source url is empty"))
	}
	if e.fetcher == nil {
		return e.failed(ctx, sourceURL, position, ErrDependencyUnavailable)
	}
	if err := e.pacer.Wait(ctx); err != nil {
		return e.failed(ctx, sourceURL, position, err)
	}

	raw, err := e.fetcher.FetchGameLog(ctx, sourceURL)
	if err != nil {
		return e.failed(ctx, sourceURL, position, err)
	}

	table := gamelog.Clean(raw, e.schema)
	if currentSeason > 0 {
		table = table.SinceSeason(currentSeason - 1)
	}
	if table.CoercionFailures > 0 {
		e.logger.WarnContext(ctx, "game log had unparseable numeric cells",
			"url", sourceURL,
			"cells", table.CoercionFailures,
		)
	}
	if table.Empty() {
		return Extraction{Table: table, Outcome: ExtractionNoGames}
	}

	e.logger.DebugContext(ctx, "game log extracted",
		"url", sourceURL,
		"position", position,
		"games", len(table.Rows),
	)
	return Extraction{Table: table, Outcome: ExtractionGames}
}

func (e *GameLogExtractor) failed(ctx context.Context, sourceURL, position string, err error) Extraction {
	e.logger.WarnContext(ctx, "game log unavailable, using empty log",
		"url", sourceURL,
		"position", position,
		"error", err,
	)
	return Extraction{
		Table:   gamelog.Table{},
		Outcome: ExtractionFetchFailed,
		Err:     err,
	}
}
