package efficiency

import "github.com/riskibarqy/antelope-reconciler/internal/domain/roster"

type rollup struct {
	name  string
	parts []string
}

var defensiveRollups = []rollup{
	{name: "tackle", parts: []string{"AssistedTacklesEfficiency", "SoloTacklesEfficiency"}},
	{name: "QB_pressure", parts: []string{"SacksEfficiency", "QBHitsEfficiency"}},
	{name: "Turnover", parts: []string{"ForcedFumblesEfficiency", "InterceptionsEfficiency", "PassesDefendedEfficiency"}},
	{name: "PassesDefended", parts: []string{"PassesDefendedEfficiency"}},
}

var offensiveRollup = rollup{
	name:  "total",
	parts: []string{"PassingYardsEfficiency", "RushingYardsEfficiency", "ReceivingYardsEfficiency"},
}

// DefensiveGroups and OffensiveGroups receive their respective roll-ups.
var (
	DefensiveGroups = []string{roster.GroupSecondary, roster.GroupDefFront}
	OffensiveGroups = []string{roster.GroupQB, roster.GroupWR, roster.GroupRB, roster.GroupTE}
)

// DefensiveRollups sums the fixed defensive sub-components. A category is
// omitted when any of its components is missing.
func DefensiveRollups(eff map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(defensiveRollups))
	for _, r := range defensiveRollups {
		if v, ok := r.sum(eff); ok {
			out[r.name] = v
		}
	}
	return out
}

// OffensiveRollup is passing + rushing + receiving yards efficiency.
func OffensiveRollup(eff map[string]float64) (float64, bool) {
	return offensiveRollup.sum(eff)
}

// Rollups applies the defensive and offensive roll-ups to their groups.
func Rollups(team TeamEfficiency) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, g := range DefensiveGroups {
		if eff, ok := team[g]; ok {
			if r := DefensiveRollups(eff); len(r) > 0 {
				out[g] = r
			}
		}
	}
	for _, g := range OffensiveGroups {
		if eff, ok := team[g]; ok {
			if v, ok := OffensiveRollup(eff); ok {
				out[g] = map[string]float64{offensiveRollup.name: v}
			}
		}
	}
	return out
}

func (r rollup) sum(eff map[string]float64) (float64, bool) {
	var total float64
	for _, p := range r.parts {
		v, ok := eff[p]
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}
