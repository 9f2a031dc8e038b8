package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	usecasemock "github.com/riskibarqy/antelope-reconciler/internal/mocks/usecase"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
)

const testSourceURL = "https://pfr.test"

func countingPacer(n *int) pacing.Pacer {
	return pacing.PacerFunc(func(ctx context.Context) error {
		*n++
		return ctx.Err()
	})
}

func newTestResolver(fetcher IdentityFetcher, pacer pacing.Pacer, maxAttempts int) *PlayerResolver {
	return NewPlayerResolver(
		fetcher,
		pacer,
		identity.NewMatcher(identity.DefaultNameThreshold),
		PlayerResolverConfig{BaseURL: testSourceURL, MaxAttempts: maxAttempts},
		logging.NewNop(),
	)
}

var joshAllen = roster.Identity{Name: "Josh Allen", Team: "BUF", Position: "QB", Status: roster.StatusHealthy}

func TestPlayerResolver_MatchesOnFirstAttempt(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	fetcher.
		On("FetchIdentity", mock.Anything, testSourceURL+"/players/A/AlleJo00/gamelog/").
		Return(identity.Scraped{Name: "Josh Allen", Position: "QB", Team: "BUF"}, nil).
		Once()

	waits := 0
	res, err := newTestResolver(fetcher, countingPacer(&waits), 0).Resolve(context.Background(), joshAllen)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.State != ResolutionMatched || res.Attempts != 1 {
		t.Fatalf("expected matched after 1 attempt, got state=%s attempts=%d", res.State, res.Attempts)
	}
	if !res.Match.Matched || res.Match.EditDistance != 0 {
		t.Fatalf("unexpected match result %+v", res.Match)
	}
	if res.SourceURL != testSourceURL+"/players/A/AlleJo00/gamelog/" {
		t.Fatalf("source url should default to the candidate url, got %q", res.SourceURL)
	}
	if waits != 1 {
		t.Fatalf("expected one paced wait, got %d", waits)
	}
}

func TestPlayerResolver_ExhaustsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	fetcher.
		On("FetchIdentity", mock.Anything, mock.Anything).
		Return(identity.Scraped{Name: "Josh Allen", Position: "LB", Team: "JAX"}, nil).
		Times(DefaultResolverMaxAttempts)

	waits := 0
	res, err := newTestResolver(fetcher, countingPacer(&waits), 0).Resolve(context.Background(), joshAllen)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.State != ResolutionExhausted {
		t.Fatalf("expected exhausted, got %s", res.State)
	}
	if res.Attempts != DefaultResolverMaxAttempts || waits != DefaultResolverMaxAttempts {
		t.Fatalf("expected %d attempts and waits, got attempts=%d waits=%d", DefaultResolverMaxAttempts, res.Attempts, waits)
	}
	if res.Identity != nil || res.SourceURL != "" {
		t.Fatalf("identity fields must be nulled on exhaustion: %+v", res)
	}
}

func TestPlayerResolver_FetchFailureConsumesAttempt(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	fetcher.
		On("FetchIdentity", mock.Anything, testSourceURL+"/players/A/AlleJo00/gamelog/").
		Return(identity.Scraped{}, errors.New("status 503")).
		Once()
	fetcher.
		On("FetchIdentity", mock.Anything, testSourceURL+"/players/A/AlleJo01/gamelog/").
		Return(identity.Scraped{Name: "Josh Allen", Position: "QB", Team: "BUF", SourceURL: "canonical"}, nil).
		Once()

	res, err := newTestResolver(fetcher, pacing.Noop, 0).Resolve(context.Background(), joshAllen)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.State != ResolutionMatched || res.Attempts != 2 {
		t.Fatalf("expected match on second attempt, got state=%s attempts=%d", res.State, res.Attempts)
	}
	if res.SourceURL != "canonical" {
		t.Fatalf("expected scraped source url, got %q", res.SourceURL)
	}
}

func TestPlayerResolver_MatchOnLastAttemptCounts(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	fetcher.
		On("FetchIdentity", mock.Anything, testSourceURL+"/players/A/AlleJo02/gamelog/").
		Return(identity.Scraped{Name: "Josh Allen", Position: "QB", Team: "BUF"}, nil).
		Once()
	fetcher.
		On("FetchIdentity", mock.Anything, mock.Anything).
		Return(identity.Scraped{Name: "Josh Allen", Position: "DE", Team: "JAX"}, nil).
		Twice()

	res, err := newTestResolver(fetcher, pacing.Noop, 3).Resolve(context.Background(), joshAllen)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.State != ResolutionMatched || res.Attempts != 3 {
		t.Fatalf("expected match on the final attempt, got state=%s attempts=%d", res.State, res.Attempts)
	}
}

func TestPlayerResolver_RejectsInvalidIdentity(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	resolver := newTestResolver(fetcher, pacing.Noop, 0)

	cases := []roster.Identity{
		{Team: "BUF", Position: "QB"},
		{Name: "Josh Allen", Position: "QB"},
		{Name: "Madonna", Team: "BUF", Position: "QB"},
	}
	for _, tc := range cases {
		if _, err := resolver.Resolve(context.Background(), tc); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}
}

func TestPlayerResolver_StopsWhenPacerIsCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := usecasemock.NewIdentityFetcher(t)
	_, err := newTestResolver(fetcher, pacing.Noop, 0).Resolve(ctx, joshAllen)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
