package statschema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSchemaIsValid(t *testing.T) {
	t.Parallel()

	s, err := Default()
	if err != nil {
		t.Fatalf("load default schema: %v", err)
	}

	if got := s.Positions(); len(got) != 7 || got[0] != "QB" || got[6] != "CB/SS" {
		t.Fatalf("unexpected positions %v", got)
	}

	py, ok := s.Stat("PassingYards")
	if !ok {
		t.Fatalf("expected PassingYards stat")
	}
	if py.Column != (Column{Group: "Passing", Field: "Yds"}) || !py.Efficiency || py.Denominator != "OffensiveSnaps" {
		t.Fatalf("unexpected PassingYards %+v", py)
	}
	if py.EfficiencyName() != "PassingYardsEfficiency" {
		t.Fatalf("unexpected efficiency name %s", py.EfficiencyName())
	}

	for _, st := range s.PlayerStats() {
		if st.Level != LevelPlayer {
			t.Fatalf("PlayerStats returned %s at level %s", st.ID, st.Level)
		}
	}
	if _, ok := s.Stat("PointsScored"); !ok {
		t.Fatalf("expected team-level stat to be kept")
	}
	for _, eff := range s.EfficiencyStats() {
		if eff.ID == "OffensiveSnaps" || eff.ID == "DefensiveSnaps" {
			t.Fatalf("denominators must not be efficiency stats")
		}
	}
}

func TestParseRejectsUnknownDenominator(t *testing.T) {
	t.Parallel()

	raw := `
positions: [QB]
stats:
  PassingYards:
    stat_level: player
    type: float
    player_log_level_0: Passing
    player_log_level_1: Yds
    efficiency: on
    efficiencyDenominator: Snaps
`
	_, err := Parse([]byte(raw))
	if !errors.Is(err, ErrInvalidSchema) || !strings.Contains(err.Error(), "unknown efficiencyDenominator") {
		t.Fatalf("expected denominator error, got %v", err)
	}
}

func TestParseRejectsMissingColumnAndBadLevel(t *testing.T) {
	t.Parallel()

	raw := `
positions: [QB]
stats:
  A:
    stat_level: player
    type: float
  B:
    stat_level: league
    type: float
    player_log_level_0: X
    player_log_level_1: Y
`
	_, err := Parse([]byte(raw))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "A: player stats need") || !strings.Contains(err.Error(), `B: unknown stat_level "league"`) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestParseRequiresPositions(t *testing.T) {
	t.Parallel()

	raw := `
stats:
  A:
    stat_level: team
    type: float
`
	if _, err := Parse([]byte(raw)); err == nil || !strings.Contains(err.Error(), "positions are required") {
		t.Fatalf("expected positions error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	raw := `
positions: [RB]
stats:
  RushingYards:
    stat_level: player
    type: float
    player_log_level_0: Rushing
    player_log_level_1: Yds
    efficiency: yes
    efficiencyDenominator: OffensiveSnaps
  OffensiveSnaps:
    stat_level: player
    type: float
    player_log_level_0: Snap Counts
    player_log_level_1: OffSnp
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	cols := s.NumericColumns()
	if len(cols) != 2 || cols[0] != (Column{"Snap Counts", "OffSnp"}) || cols[1] != (Column{"Rushing", "Yds"}) {
		t.Fatalf("unexpected numeric columns %v", cols)
	}
}
