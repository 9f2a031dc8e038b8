// Package gamelog turns a player's raw per-game table into typed rows with
// derived per-snap efficiencies.
package gamelog

import (
	"math"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

type Column = statschema.Column

const (
	GroupUnnamed      = "level_0"
	FieldUnnamed      = "level_1"
	GroupEfficiency   = "efficiency"
	transferPrefix    = "Player went from "
	placeholderHeader = "Date"
)

var (
	ColDate     = Column{Group: GroupUnnamed, Field: "Date"}
	ColTeam     = Column{Group: GroupUnnamed, Field: "Team"}
	ColSeason   = Column{Group: GroupUnnamed, Field: "Year"}
	ColOffSnaps = Column{Group: "Snap Counts", Field: "OffSnp"}
	ColDefSnaps = Column{Group: "Snap Counts", Field: "DefSnp"}

	ColPassYds  = Column{Group: "Passing", Field: "Yds"}
	ColRushYds  = Column{Group: "Rushing", Field: "Yds"}
	ColRushTD   = Column{Group: "Rushing", Field: "TD"}
	ColRecYds   = Column{Group: "Receiving", Field: "Yds"}
	ColRecTD    = Column{Group: "Receiving", Field: "TD"}
	ColSolo     = Column{Group: "Tackles", Field: "Solo"}
	ColAst      = Column{Group: "Tackles", Field: "Ast"}
	ColSacks    = Column{Group: "Tackles", Field: "Sacks"}
	ColQBHits   = Column{Group: "Tackles", Field: "QBHits"}
	ColDefInt   = Column{Group: "Def Interceptions", Field: "Int"}
	ColPD       = Column{Group: "Def Interceptions", Field: "PD"}
	ColFF       = Column{Group: "Fumbles", Field: "FF"}
	ColTimesSkd = Column{Group: "Passing", Field: "Sacks"}
)

// efficiencyInputs are always coerced, whatever the schema declares.
var efficiencyInputs = []Column{
	ColOffSnaps, ColDefSnaps,
	ColPassYds, ColRushYds, ColRushTD, ColRecYds, ColRecTD,
	ColSolo, ColAst, ColSacks, ColQBHits, ColDefInt, ColPD, ColFF,
}

// Inactive markers found in the offensive snap column.
var sentinels = map[string]struct{}{
	"Inactive":        {},
	"Did Not Play":    {},
	"Injured Reserve": {},
	"Suspended":       {},
	"COVID-19 List":   {},
	"Exempt List":     {},
}

// RawTable is a parsed two-level header table with untyped cells.
type RawTable struct {
	Columns []Column
	Rows    [][]string
}

// Row is one game the player dressed for.
type Row struct {
	Date       string
	Season     int
	Team       string
	Text       map[Column]string
	Stats      map[Column]float64
	Efficiency Efficiency
}

// Value resolves a stat column, including the derived efficiency group.
func (r Row) Value(c Column) float64 {
	if c.Group == GroupEfficiency {
		v, _ := r.Efficiency.Lookup(c.Field)
		return v
	}
	return r.Stats[c]
}

// Table is a cleaned game log.
type Table struct {
	Columns []Column
	Rows    []Row
	// CoercionFailures counts numeric cells that could not be parsed and
	// were treated as zero.
	CoercionFailures int
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// SinceSeason keeps rows from season and later. Rows without a season are dropped.
func (t Table) SinceSeason(season int) Table {
	out := Table{Columns: t.Columns, CoercionFailures: t.CoercionFailures}
	for _, r := range t.Rows {
		if r.Season != 0 && r.Season >= season {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Records flattens rows into "Group.Field" keyed maps with JSON-safe values.
func (t Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make(map[string]any, len(r.Text)+len(r.Stats)+len(efficiencyFields)+1)
		for c, v := range r.Text {
			rec[c.String()] = v
		}
		for c, v := range r.Stats {
			rec[c.String()] = finiteOrNil(v)
		}
		for _, name := range efficiencyFields {
			v, _ := r.Efficiency.Lookup(name)
			rec[GroupEfficiency+"."+name] = finiteOrNil(v)
		}
		if r.Season != 0 {
			rec[ColSeason.String()] = r.Season
		}
		out = append(out, rec)
	}
	return out
}

func finiteOrNil(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
