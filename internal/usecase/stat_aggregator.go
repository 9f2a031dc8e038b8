package usecase

import (
	"math"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/efficiency"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

// StatAggregator binds the efficiency reductions to one loaded schema.
type StatAggregator struct {
	schema *statschema.Schema
}

func NewStatAggregator(schema *statschema.Schema) *StatAggregator {
	return &StatAggregator{schema: schema}
}

func (a *StatAggregator) Schema() *statschema.Schema { return a.schema }

// AggregatePlayer returns a store-safe stat line: every declared stat is
// present and finite.
func (a *StatAggregator) AggregatePlayer(log gamelog.Table) efficiency.StatLine {
	line := efficiency.AggregatePlayer(log, a.schema)
	for id, v := range line {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			line[id] = 0
		}
	}
	return line
}

func (a *StatAggregator) AggregateTeam(players []efficiency.PlayerStats) efficiency.TeamEfficiency {
	return efficiency.AggregateTeam(players, a.schema)
}
