package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/riskibarqy/antelope-reconciler/internal/config"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

func TestDecodeRoster(t *testing.T) {
	t.Parallel()

	const item = `{"PLAYER_NAME":"Josh Allen","TEAM_NAME":"BUF","PLAYER_POSITION":"QB","currentSeason":2024,"status":"Active"}`

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "bare array", raw: "[" + item + "," + item + "]", want: 2},
		{name: "request body", raw: ` {"items":[` + item + `]}`, want: 1},
		{name: "empty body", raw: `{"items":[]}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, err := decodeRoster([]byte(tt.raw))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
			if tt.want > 0 && (items[0].PlayerName != "Josh Allen" || items[0].CurrentSeason != 2024) {
				t.Fatalf("unexpected item: %+v", items[0])
			}
		})
	}

	if _, err := decodeRoster([]byte(`[{"PLAYER_NAME":`)); err == nil {
		t.Fatalf("expected error for truncated json")
	}
}

func TestSplitTeams(t *testing.T) {
	t.Parallel()

	got := splitTeams(" BUF, ,KC ")
	if len(got) != 2 || got[0] != "BUF" || got[1] != "KC" {
		t.Fatalf("unexpected teams: %v", got)
	}
	if splitTeams("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestRun_RejectsBadInputBeforeBuildingRuntime(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := config.Config{StorageDriver: config.StoragePostgres}

	if err := run(context.Background(), cfg, logging.NewNop(), "bogus", nil, &out); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := run(context.Background(), cfg, logging.NewNop(), "player", []string{"-name", "Josh Allen"}, &out); err == nil {
		t.Fatalf("expected validation error for missing team")
	}
	if err := run(context.Background(), cfg, logging.NewNop(), "roster", nil, &out); err == nil || !strings.Contains(err.Error(), "-file is required") {
		t.Fatalf("expected missing file error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
}
