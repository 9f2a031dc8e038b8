package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
)

const DefaultResolverMaxAttempts = 13

type ResolutionState string

const (
	ResolutionSearching ResolutionState = "searching"
	ResolutionMatched   ResolutionState = "matched"
	ResolutionExhausted ResolutionState = "exhausted"
)

// Resolution is the terminal outcome of a resolve loop. Identity and
// SourceURL are only set when State is ResolutionMatched.
type Resolution struct {
	State     ResolutionState      `json:"state"`
	Identity  *identity.Scraped    `json:"identity,omitempty"`
	SourceURL string               `json:"source_url,omitempty"`
	Attempts  int                  `json:"attempts"`
	Match     identity.MatchResult `json:"match"`
}

func (r Resolution) Matched() bool { return r.State == ResolutionMatched }

type PlayerResolverConfig struct {
	BaseURL     string
	MaxAttempts int
}

// PlayerResolver walks the candidate keys of a roster player until the
// statistics source returns a page whose identity matches.
type PlayerResolver struct {
	fetcher IdentityFetcher
	pacer   pacing.Pacer
	matcher identity.Matcher
	cfg     PlayerResolverConfig
	logger  *logging.Logger
}

func NewPlayerResolver(
	fetcher IdentityFetcher,
	pacer pacing.Pacer,
	matcher identity.Matcher,
	cfg PlayerResolverConfig,
	logger *logging.Logger,
) *PlayerResolver {
	if pacer == nil {
		pacer = pacing.Noop
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultResolverMaxAttempts
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerResolver{
		fetcher: fetcher,
		pacer:   pacer,
		matcher: matcher,
		cfg:     cfg,
		logger:  logger,
	}
}

// Resolve never fails on fetch errors; a failed fetch consumes its attempt.
// Errors are returned only for unusable input or a cancelled context.
func (r *PlayerResolver) Resolve(ctx context.Context, player roster.Identity) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerResolver.Resolve")
	defer span.End()

	if err := player.Validate(); err != nil {
		return Resolution{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if r.fetcher == nil {
		return Resolution{}, fmt.Errorf("%w: identity fetcher is not configured", ErrDependencyUnavailable)
	}
	if _, err := identity.NextCandidate(player.Name, 0); err != nil {
		return Resolution{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	res := Resolution{State: ResolutionSearching}
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		key, err := identity.NextCandidate(player.Name, attempt)
		if err != nil {
			// Only reachable past the two-digit counter.
			break
		}
		if err := r.pacer.Wait(ctx); err != nil {
			return Resolution{}, err
		}
		res.Attempts++

		url := key.URL(r.cfg.BaseURL)
		scraped, err := r.fetcher.FetchIdentity(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return Resolution{}, ctxErr
			}
			r.logger.WarnContext(ctx, "candidate fetch failed",
				"player", player.Name,
				"attempt", attempt,
				"url", url,
				"error", err,
			)
			continue
		}
		if strings.TrimSpace(scraped.SourceURL) == "" {
			scraped.SourceURL = url
		}

		result := r.matcher.Match(player, scraped)
		res.Match = result
		if result.Matched {
			res.State = ResolutionMatched
			res.Identity = &scraped
			res.SourceURL = scraped.SourceURL
			span.SetAttributes(attribute.Int("resolver.attempts", res.Attempts))
			r.logger.InfoContext(ctx, "player resolved",
				"player", player.Name,
				"team", player.Team,
				"attempt", attempt,
				"url", res.SourceURL,
				"edit_distance", result.EditDistance,
				"position_reason", string(result.PositionReason),
			)
			return res, nil
		}

		r.logger.DebugContext(ctx, "candidate rejected",
			"player", player.Name,
			"attempt", attempt,
			"scraped_name", scraped.Name,
			"scraped_team", scraped.Team,
			"scraped_position", scraped.Position,
			"name_matched", result.NameMatched,
			"team_matched", result.TeamMatched,
			"position_matched", result.PositionMatched,
		)
	}

	res.State = ResolutionExhausted
	res.Identity = nil
	res.SourceURL = ""
	span.SetAttributes(attribute.Int("resolver.attempts", res.Attempts))
	r.logger.WarnContext(ctx, "candidate space exhausted",
		"player", player.Name,
		"team", player.Team,
		"position", player.Position,
		"attempts", res.Attempts,
	)
	return res, nil
}
