// Package efficiency reduces cleaned game logs into player stat lines and
// player stat lines into team efficiencies.
package efficiency

import (
	"math"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

// StatLine is a player's summed statistics keyed by schema stat.
type StatLine map[statschema.StatID]float64

// PlayerStats is one player's contribution to a team aggregate.
type PlayerStats struct {
	Position string
	Stats    StatLine
}

// TeamEfficiency maps position group to "<Stat>Efficiency" values.
type TeamEfficiency map[string]map[string]float64

// AggregatePlayer sums every player-level schema stat over log. An empty
// log still yields every stat, at zero.
func AggregatePlayer(log gamelog.Table, schema *statschema.Schema) StatLine {
	stats := schema.PlayerStats()
	out := make(StatLine, len(stats))
	for _, st := range stats {
		var sum float64
		for _, row := range log.Rows {
			sum += row.Value(st.Column)
		}
		out[st.ID] = sum
	}
	return out
}

// WeightedAverage returns Σ(v·w)/Σw. Pairs whose product is not finite are
// left out of the numerator. When the total weight is zero the plain mean
// of the finite values is returned, and zero when there are none.
func WeightedAverage(values, weights []float64) float64 {
	var num, den float64
	for i, v := range values {
		if i >= len(weights) {
			break
		}
		w := weights[i]
		if !finite(w) {
			continue
		}
		den += w
		if p := v * w; finite(p) {
			num += p
		}
	}
	if den != 0 {
		return num / den
	}

	var sum float64
	var n int
	for _, v := range values {
		if finite(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AggregateTeam computes, per schema position, the snap-weighted average of
// every efficiency-enabled stat. Each stat is weighted by its denominator.
func AggregateTeam(players []PlayerStats, schema *statschema.Schema) TeamEfficiency {
	out := make(TeamEfficiency)
	effStats := schema.EfficiencyStats()
	for _, position := range schema.Positions() {
		group := make([]PlayerStats, 0, len(players))
		for _, p := range players {
			if p.Position == position {
				group = append(group, p)
			}
		}

		values := make(map[string]float64, len(effStats))
		for _, st := range effStats {
			effs := make([]float64, len(group))
			weights := make([]float64, len(group))
			for i, p := range group {
				weights[i] = p.Stats[st.Denominator]
				effs[i] = p.Stats[st.ID] / weights[i]
			}
			values[st.EfficiencyName()] = WeightedAverage(effs, weights)
		}
		out[position] = values
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
