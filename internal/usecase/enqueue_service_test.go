package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	depthchartmock "github.com/riskibarqy/antelope-reconciler/internal/mocks/domain/depthchart"
	playermetamock "github.com/riskibarqy/antelope-reconciler/internal/mocks/domain/playermeta"
	usecasemock "github.com/riskibarqy/antelope-reconciler/internal/mocks/usecase"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

type fixedIDs string

func (f fixedIDs) NewID() (string, error) { return string(f), nil }

func newTestEnqueueService(t *testing.T, cfg EnqueueConfig) (*EnqueueService, *depthchartmock.Repository, *playermetamock.Repository, *usecasemock.JobQueue) {
	t.Helper()

	depthRepo := depthchartmock.NewRepository(t)
	playerRepo := playermetamock.NewRepository(t)
	queue := usecasemock.NewJobQueue(t)
	svc := NewEnqueueService(depthRepo, playerRepo, queue, fixedIDs("run-1"), cfg, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, depthRepo, playerRepo, queue
}

func TestEnqueueService_EnqueuePlayers_SkipsRecentAndQueuesRest(t *testing.T) {
	t.Parallel()

	svc, depthRepo, playerRepo, queue := newTestEnqueueService(t, EnqueueConfig{RecentWindow: 72 * time.Hour, Stagger: time.Second})

	depthRepo.On("ListTeams", mock.Anything).Return([]string{"BUF"}, nil).Once()
	depthRepo.
		On("LatestByTeam", mock.Anything, "BUF").
		Return(depthchart.Row{
			Key:  "buf-2025-10-13",
			Team: "BUF",
			Slots: map[string]string{
				"qb1": "Josh Allen",
				"rb1": "James Cook Q",
				"rb2": `["Ray Davis", "Out"]`,
				"wr1": "-",
			},
		}, true, nil).
		Once()
	playerRepo.
		On("LastUpdatedAt", mock.Anything, "Josh Allen", "BUF", "QB").
		Return(fixedNow.Add(-time.Hour), true, nil).
		Once()
	playerRepo.
		On("LastUpdatedAt", mock.Anything, "James Cook", "BUF", "RB").
		Return(time.Time{}, false, nil).
		Once()
	playerRepo.
		On("LastUpdatedAt", mock.Anything, "Ray Davis", "BUF", "RB").
		Return(fixedNow.Add(-96*time.Hour), true, nil).
		Once()

	queue.
		On("Enqueue", mock.Anything, VerifyPlayerJobPath, mock.MatchedBy(func(item roster.WorkItem) bool {
			return item.PlayerName == "James Cook" &&
				item.Status == string(roster.StatusQuestionable) &&
				item.CurrentSeason == 2025 &&
				item.RunID == "run-1" &&
				item.DepthRowKey == "buf-2025-10-13"
		}), time.Duration(0), "verify-run-1-BUF-RB-James_Cook").
		Return(nil).
		Once()
	queue.
		On("Enqueue", mock.Anything, VerifyPlayerJobPath, mock.MatchedBy(func(item roster.WorkItem) bool {
			return item.PlayerName == "Ray Davis" && item.Status == "Out"
		}), time.Second, "verify-run-1-BUF-RB-Ray_Davis").
		Return(nil).
		Once()

	got, err := svc.EnqueuePlayers(context.Background(), EnqueueInput{})
	if err != nil {
		t.Fatalf("enqueue players: %v", err)
	}
	if got.RunID != "run-1" || got.Season != 2025 {
		t.Fatalf("unexpected run metadata %+v", got)
	}
	if got.CandidateCount != 3 || got.QueuedCount != 2 || got.SkippedRecent != 1 {
		t.Fatalf("unexpected counts candidates=%d queued=%d skipped=%d", got.CandidateCount, got.QueuedCount, got.SkippedRecent)
	}
}

func TestEnqueueService_EnqueuePlayers_ForceIgnoresWindow(t *testing.T) {
	t.Parallel()

	svc, depthRepo, _, queue := newTestEnqueueService(t, EnqueueConfig{RecentWindow: 72 * time.Hour})

	depthRepo.
		On("LatestByTeam", mock.Anything, "BUF").
		Return(depthchart.Row{Key: "k", Team: "BUF", Slots: map[string]string{"qb1": "Josh Allen"}}, true, nil).
		Once()
	queue.On("Enqueue", mock.Anything, VerifyPlayerJobPath, mock.Anything, time.Duration(0), mock.Anything).Return(nil).Once()

	got, err := svc.EnqueuePlayers(context.Background(), EnqueueInput{Teams: []string{"Buffalo Bills", "BUF"}, Force: true})
	if err != nil {
		t.Fatalf("enqueue players: %v", err)
	}
	if got.TeamCount != 1 || got.QueuedCount != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestEnqueueService_EnqueuePlayers_MissingDepthChartIsReported(t *testing.T) {
	t.Parallel()

	svc, depthRepo, _, _ := newTestEnqueueService(t, EnqueueConfig{})
	depthRepo.On("LatestByTeam", mock.Anything, "NYJ").Return(depthchart.Row{}, false, nil).Once()

	got, err := svc.EnqueuePlayers(context.Background(), EnqueueInput{Teams: []string{"NYJ"}})
	if err != nil {
		t.Fatalf("enqueue players: %v", err)
	}
	if len(got.Teams) != 1 || got.Teams[0].Message == "" || got.QueuedCount != 0 {
		t.Fatalf("expected a reported scan failure, got %+v", got)
	}
}

func TestEnqueueService_EnqueuePlayers_QueueFailureIsReturned(t *testing.T) {
	t.Parallel()

	svc, depthRepo, _, queue := newTestEnqueueService(t, EnqueueConfig{})
	depthRepo.
		On("LatestByTeam", mock.Anything, "BUF").
		Return(depthchart.Row{Key: "k", Team: "BUF", Slots: map[string]string{"qb1": "Josh Allen"}}, true, nil).
		Once()
	queue.On("Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("qstash down")).Once()

	if _, err := svc.EnqueuePlayers(context.Background(), EnqueueInput{Teams: []string{"BUF"}}); err == nil {
		t.Fatalf("expected queue error")
	}
}

func TestDedupID_UsesQStashSafeFormat(t *testing.T) {
	t.Parallel()

	got := dedupID("run:01", roster.WorkItem{PlayerName: "Amon-Ra St. Brown", TeamName: "DET", PlayerPosition: "WR"})
	want := "verify-run_01-DET-WR-Amon-Ra_St__Brown"
	if got != want {
		t.Fatalf("unexpected dedup id: got=%q want=%q", got, want)
	}
}
