package efficiency

import (
	"math"
	"testing"
)

func TestDefensiveRollups(t *testing.T) {
	t.Parallel()

	eff := map[string]float64{
		"SoloTacklesEfficiency":     0.06,
		"AssistedTacklesEfficiency": 0.03,
		"PassesDefendedEfficiency":  0.01,
		"SacksEfficiency":           0.002,
		"QBHitsEfficiency":          0.004,
		"InterceptionsEfficiency":   0.005,
		"ForcedFumblesEfficiency":   0.001,
	}
	got := DefensiveRollups(eff)
	want := map[string]float64{
		"tackle":         0.09,
		"QB_pressure":    0.006,
		"Turnover":       0.016,
		"PassesDefended": 0.01,
	}
	for k, w := range want {
		if math.Abs(got[k]-w) > 1e-12 {
			t.Fatalf("%s = %v want %v", k, got[k], w)
		}
	}
}

func TestDefensiveRollups_SkipsIncompleteCategories(t *testing.T) {
	t.Parallel()

	got := DefensiveRollups(map[string]float64{"PassesDefendedEfficiency": 0.2})
	if len(got) != 1 || got["PassesDefended"] != 0.2 {
		t.Fatalf("unexpected rollups %v", got)
	}
}

func TestRollupsAppliesByGroup(t *testing.T) {
	t.Parallel()

	team := TeamEfficiency{
		"QB":    {"PassingYardsEfficiency": 4, "RushingYardsEfficiency": 0.5, "ReceivingYardsEfficiency": 0},
		"DE/LB": {"PassesDefendedEfficiency": 0.01},
		"OL":    {"PassingYardsEfficiency": 1},
	}
	got := Rollups(team)
	if got["QB"]["total"] != 4.5 {
		t.Fatalf("unexpected QB total %v", got["QB"])
	}
	if got["DE/LB"]["PassesDefended"] != 0.01 {
		t.Fatalf("unexpected DE/LB rollups %v", got["DE/LB"])
	}
	if _, ok := got["OL"]; ok {
		t.Fatalf("OL has no roll-up")
	}
}
