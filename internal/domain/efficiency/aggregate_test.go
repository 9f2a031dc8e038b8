package efficiency

import (
	"math"
	"testing"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

func mustSchema(t *testing.T) *statschema.Schema {
	t.Helper()
	s, err := statschema.Default()
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

func TestAggregatePlayer_EmptyLogIsAllZero(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	line := AggregatePlayer(gamelog.Table{}, schema)

	stats := schema.PlayerStats()
	if len(line) != len(stats) {
		t.Fatalf("expected %d stats, got %d", len(stats), len(line))
	}
	for _, st := range stats {
		v, ok := line[st.ID]
		if !ok || v != 0.0 {
			t.Fatalf("expected %s = 0.0, got %v (present=%v)", st.ID, v, ok)
		}
	}
	if _, ok := line["PointsScored"]; ok {
		t.Fatalf("team-level stats must not be aggregated per player")
	}
}

func TestAggregatePlayer_SumsCleanedLog(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	raw := gamelog.RawTable{
		Columns: []gamelog.Column{
			{Field: "Date"}, {Field: "Team"},
			{Group: "Passing", Field: "Yds"},
			{Group: "Snap Counts", Field: "OffSnp"},
		},
		Rows: [][]string{
			{"2025-09-07", "BUF", "10", "2"},
			{"2025-09-14", "BUF", "", "Did Not Play"},
			{"2025-09-21", "BUF", "20", "3"},
		},
	}
	log := gamelog.Clean(raw, schema)
	if len(log.Rows) != 2 {
		t.Fatalf("expected 2 games after cleaning, got %d", len(log.Rows))
	}
	if log.Rows[0].Efficiency.PassYards != 5.0 || math.Abs(log.Rows[1].Efficiency.PassYards-6.67) > 0.005 {
		t.Fatalf("unexpected per-game efficiency %v / %v", log.Rows[0].Efficiency.PassYards, log.Rows[1].Efficiency.PassYards)
	}

	line := AggregatePlayer(log, schema)
	if line["PassingYards"] != 30.0 || line["OffensiveSnaps"] != 5.0 {
		t.Fatalf("unexpected totals %v", line)
	}
}

func TestWeightedAverage(t *testing.T) {
	t.Parallel()

	if got := WeightedAverage([]float64{2, 4}, []float64{1, 3}); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
	if got := WeightedAverage([]float64{1, 2, 3}, []float64{0, 0, 0}); got != 2 {
		t.Fatalf("expected unweighted mean 2, got %v", got)
	}
	if got := WeightedAverage([]float64{math.Inf(1), math.NaN()}, []float64{0, 0}); got != 0 {
		t.Fatalf("expected 0 with no finite values, got %v", got)
	}
	if got := WeightedAverage(nil, nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestAggregateTeam_SnapWeighted(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	players := []PlayerStats{
		{Position: "QB", Stats: StatLine{"PassingYards": 300, "OffensiveSnaps": 60}},
		{Position: "QB", Stats: StatLine{"PassingYards": 20, "OffensiveSnaps": 4}},
		{Position: "WR", Stats: StatLine{"ReceivingYards": 90, "OffensiveSnaps": 45}},
	}
	team := AggregateTeam(players, schema)

	// (5*60 + 5*4) / 64
	if got := team["QB"]["PassingYardsEfficiency"]; got != 5.0 {
		t.Fatalf("expected QB passing efficiency 5.0, got %v", got)
	}
	if got := team["WR"]["ReceivingYardsEfficiency"]; got != 2.0 {
		t.Fatalf("expected WR receiving efficiency 2.0, got %v", got)
	}
	if len(team) != len(schema.Positions()) {
		t.Fatalf("expected every schema position, got %v", team)
	}
}

func TestAggregateTeam_ZeroWeightGroupIsNotNaN(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t)
	players := []PlayerStats{
		{Position: "CB/SS", Stats: StatLine{"SoloTackles": 0, "DefensiveSnaps": 0}},
		{Position: "CB/SS", Stats: StatLine{"SoloTackles": 0, "DefensiveSnaps": 0}},
	}
	team := AggregateTeam(players, schema)
	for name, v := range team["CB/SS"] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s is non-finite: %v", name, v)
		}
	}
}
