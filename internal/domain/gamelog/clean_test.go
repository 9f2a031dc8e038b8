package gamelog

import (
	"math"
	"testing"
	"time"

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

func qbTable() RawTable {
	return RawTable{
		Columns: []Column{
			{Group: "Unnamed: 0_level_0", Field: "Rk"},
			{Group: "", Field: "Date"},
			{Group: "", Field: "Team"},
			{Group: "", Field: "Opp"},
			{Group: "Passing", Field: "Yds"},
			{Group: "Passing", Field: "Sk"},
			{Group: "", Field: "Sk"},
			{Group: "Snap Counts", Field: "OffSnp"},
		},
		Rows: [][]string{
			{"1", "2024-09-08", "BUF", "ARI", "10", "1", "", "2"},
			{"Rk", "Date", "Team", "Opp", "Yds", "Sk", "Sk", "OffSnp"},
			{"2", "2024-09-12", "BUF", "MIA", "20", "0", "1.5", "3"},
			{"3", "2024-09-22", "BUF", "JAX", "", "", "", "Inactive"},
			{"4", "2024-09-29", "BUF", "BAL", "", "", "", "COVID-19 List"},
			{"", "Player went from BUF to NYJ", "BUF", "", "", "", "", ""},
			{"", "", "", "", "30", "1", "1.5", "5"},
		},
	}
}

func TestClean_DropsPlaceholderSentinelTransferAndTotals(t *testing.T) {
	t.Parallel()

	table := Clean(qbTable(), mustSchema(t))
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 games, got %d: %+v", len(table.Rows), table.Rows)
	}
	if table.Rows[0].Date != "2024-09-08" || table.Rows[1].Date != "2024-09-12" {
		t.Fatalf("unexpected rows %+v", table.Rows)
	}
	if table.Rows[0].Season != 2024 || table.Rows[0].Team != "BUF" {
		t.Fatalf("unexpected first row %+v", table.Rows[0])
	}
	if table.Rows[0].Text[Column{Group: GroupUnnamed, Field: "Opp"}] != "ARI" {
		t.Fatalf("expected opponent text to be kept, got %+v", table.Rows[0].Text)
	}
}

func TestClean_ReclassifiesSacks(t *testing.T) {
	t.Parallel()

	table := Clean(qbTable(), mustSchema(t))
	second := table.Rows[1]
	if got := second.Stats[ColSacks]; got != 1.5 {
		t.Fatalf("expected sacks made 1.5 under Tackles, got %v", got)
	}
	if got := table.Rows[0].Stats[ColTimesSkd]; got != 1 {
		t.Fatalf("expected times sacked 1 under Passing, got %v", got)
	}
	for _, c := range table.Columns {
		if c.Field == "Sk" {
			t.Fatalf("raw Sk column left behind: %v", c)
		}
	}
}

func TestClean_SynthesizesMissingColumnsAsZero(t *testing.T) {
	t.Parallel()

	table := Clean(qbTable(), mustSchema(t))
	for _, r := range table.Rows {
		for _, c := range []Column{ColRushYds, ColSolo, ColPD, ColDefSnaps} {
			v, ok := r.Stats[c]
			if !ok || v != 0 {
				t.Fatalf("expected synthesized zero for %v, got %v %v", c, v, ok)
			}
		}
	}
}

func TestClean_EfficiencyPerGame(t *testing.T) {
	t.Parallel()

	table := Clean(qbTable(), mustSchema(t))
	if got := table.Rows[0].Efficiency.PassYards; got != 5.0 {
		t.Fatalf("expected 5.0, got %v", got)
	}
	if got := table.Rows[1].Efficiency.PassYards; math.Abs(got-20.0/3.0) > 1e-9 {
		t.Fatalf("expected 6.67, got %v", got)
	}
	if got := table.Rows[1].Value(Column{Group: GroupEfficiency, Field: "pass_yards_efficiency"}); math.Abs(got-6.6667) > 1e-3 {
		t.Fatalf("expected efficiency lookup 6.67, got %v", got)
	}
	// No defensive snaps: ratios are non-finite rather than a panic.
	if got := table.Rows[0].Efficiency.Tackle; !math.IsNaN(got) {
		t.Fatalf("expected NaN tackle efficiency with zero snaps, got %v", got)
	}
	if got := table.Rows[1].Efficiency.Sack; !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf sack efficiency, got %v", got)
	}
}

func TestClean_UnparseableNumbersCountAsZero(t *testing.T) {
	t.Parallel()

	raw := RawTable{
		Columns: []Column{{Field: "Date"}, {Field: "Team"}, {Group: "Rushing", Field: "Yds"}, {Group: "Snap Counts", Field: "OffSnp"}},
		Rows:    [][]string{{"2025-10-05", "KC", "n/a", "40"}},
	}
	table := Clean(raw, mustSchema(t))
	if len(table.Rows) != 1 || table.Rows[0].Stats[ColRushYds] != 0 || table.CoercionFailures != 1 {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestTable_SinceSeasonAndRecords(t *testing.T) {
	t.Parallel()

	raw := RawTable{
		Columns: []Column{{Field: "Date"}, {Field: "Team"}, {Group: "Passing", Field: "Yds"}, {Group: "Snap Counts", Field: "OffSnp"}},
		Rows: [][]string{
			{"2022-12-04", "BUF", "300", "60"},
			{"2024-01-07", "BUF", "250", "55"},
			{"2024-09-08", "BUF", "10", "0"},
		},
	}
	table := Clean(raw, mustSchema(t)).SinceSeason(2023)
	if len(table.Rows) != 2 || table.Rows[0].Season != 2023 || table.Rows[1].Season != 2024 {
		t.Fatalf("unexpected filtered rows %+v", table.Rows)
	}

	recs := table.Records()
	if recs[1]["efficiency.pass_yards_efficiency"] != nil {
		t.Fatalf("expected non-finite efficiency to serialize as nil, got %v", recs[1]["efficiency.pass_yards_efficiency"])
	}
	if recs[0]["Passing.Yds"] != 250.0 || recs[0]["level_0.Year"] != 2023 || recs[0]["level_0.Date"] != "2024-01-07" {
		t.Fatalf("unexpected record %v", recs[0])
	}
}

func TestSeasonHelpers(t *testing.T) {
	t.Parallel()

	cases := map[string]int{"2025-07-31": 2024, "2025-08-01": 2025, "2026-02-08": 2025, "2025-12-28": 2025}
	for date, want := range cases {
		got, ok := SeasonFromDate(date)
		if !ok || got != want {
			t.Fatalf("SeasonFromDate(%q) = %d,%v want %d", date, got, ok, want)
		}
	}
	if _, ok := SeasonFromDate("Date"); ok {
		t.Fatalf("expected placeholder date to be rejected")
	}

	if got := CurrentSeason(time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)); got != 2024 {
		t.Fatalf("expected 2024 before September, got %d", got)
	}
	if got := CurrentSeason(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)); got != 2025 {
		t.Fatalf("expected 2025 from September, got %d", got)
	}
}
