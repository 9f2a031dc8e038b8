package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
	usecasemock "github.com/riskibarqy/antelope-reconciler/internal/mocks/usecase"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
)

func mustDefaultSchema(t *testing.T) *statschema.Schema {
	t.Helper()
	s, err := statschema.Default()
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

func qbGameLog() gamelog.RawTable {
	return gamelog.RawTable{
		Columns: []gamelog.Column{
			{Field: "Date"},
			{Field: "Team"},
			{Group: "Passing", Field: "Yds"},
			{Group: "Passing", Field: "TD"},
			{Group: "Snap Counts", Field: "OffSnp"},
		},
		Rows: [][]string{
			{"2023-10-01", "BUF", "250", "2", "60"},
			{"2024-09-08", "BUF", "10", "0", "2"},
			{"2024-12-29", "BUF", "", "", "Did Not Play"},
			{"2025-09-07", "BUF", "20", "1", "3"},
		},
	}
}

func TestGameLogExtractor_CleansAndFiltersSeasons(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewGameLogFetcher(t)
	fetcher.On("FetchGameLog", mock.Anything, "https://pfr.test/p").Return(qbGameLog(), nil).Once()

	extractor := NewGameLogExtractor(fetcher, pacing.Noop, mustDefaultSchema(t), logging.NewNop())
	got := extractor.Extract(context.Background(), "https://pfr.test/p", "QB", 2025)

	if got.Outcome != ExtractionGames || got.Err != nil {
		t.Fatalf("unexpected outcome %s err=%v", got.Outcome, got.Err)
	}
	if len(got.Table.Rows) != 2 {
		t.Fatalf("expected 2024 and 2025 games only, got %d rows", len(got.Table.Rows))
	}
	if got.Table.Rows[0].Season != 2024 || got.Table.Rows[1].Season != 2025 {
		t.Fatalf("unexpected seasons %d %d", got.Table.Rows[0].Season, got.Table.Rows[1].Season)
	}
}

func TestGameLogExtractor_FetchFailureIsEmptyNotError(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewGameLogFetcher(t)
	fetcher.On("FetchGameLog", mock.Anything, mock.Anything).Return(gamelog.RawTable{}, errors.New("no table")).Once()

	extractor := NewGameLogExtractor(fetcher, pacing.Noop, mustDefaultSchema(t), logging.NewNop())
	got := extractor.Extract(context.Background(), "https://pfr.test/p", "QB", 2025)

	if got.Outcome != ExtractionFetchFailed || got.Err == nil {
		t.Fatalf("expected fetch_failed with error, got %s err=%v", got.Outcome, got.Err)
	}
	if !got.Table.Empty() {
		t.Fatalf("expected empty table")
	}
}

func TestGameLogExtractor_RookieHasNoGames(t *testing.T) {
	t.Parallel()

	raw := qbGameLog()
	raw.Rows = nil
	fetcher := usecasemock.NewGameLogFetcher(t)
	fetcher.On("FetchGameLog", mock.Anything, mock.Anything).Return(raw, nil).Once()

	extractor := NewGameLogExtractor(fetcher, pacing.Noop, mustDefaultSchema(t), logging.NewNop())
	got := extractor.Extract(context.Background(), "https://pfr.test/p", "QB", 2025)
	if got.Outcome != ExtractionNoGames || got.Err != nil {
		t.Fatalf("expected no_games, got %s err=%v", got.Outcome, got.Err)
	}
}

func TestGameLogExtractor_EmptyURLSkipsFetch(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewGameLogFetcher(t)
	extractor := NewGameLogExtractor(fetcher, pacing.Noop, mustDefaultSchema(t), logging.NewNop())
	if got := extractor.Extract(context.Background(), " ", "QB", 2025); got.Outcome != ExtractionFetchFailed {
		t.Fatalf("expected fetch_failed, got %s", got.Outcome)
	}
}
