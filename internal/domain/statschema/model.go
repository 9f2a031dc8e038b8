// Package statschema describes which game log columns feed the player and
// team statistics.
package statschema

import (
	"slices"
	"strings"
)

// StatID names a statistic, e.g. PassingYards.
type StatID string

type Level string

const (
	LevelPlayer Level = "player"
	LevelTeam   Level = "team"
)

type ValueType string

const (
	TypeFloat  ValueType = "float"
	TypeInt    ValueType = "int"
	TypeString ValueType = "string"
)

// Column is a two-level game log header, e.g. (Passing, Yds).
type Column struct {
	Group string
	Field string
}

func (c Column) IsZero() bool { return c.Group == "" && c.Field == "" }

// String renders "Group.Field", the key used in serialized logs.
func (c Column) String() string { return c.Group + "." + c.Field }

// Stat is one configured statistic.
type Stat struct {
	ID          StatID
	Level       Level
	Type        ValueType
	Column      Column
	Efficiency  bool
	Denominator StatID
}

// EfficiencyName is the team-level key derived from the stat.
func (s Stat) EfficiencyName() string { return string(s.ID) + "Efficiency" }

// Schema is the validated, read-only stat taxonomy.
type Schema struct {
	stats     map[StatID]Stat
	order     []StatID
	positions []string
}

func (s *Schema) Stat(id StatID) (Stat, bool) {
	st, ok := s.stats[id]
	return st, ok
}

// Positions are the aggregation groups in configured order.
func (s *Schema) Positions() []string { return slices.Clone(s.positions) }

// Stats returns every stat ordered by ID.
func (s *Schema) Stats() []Stat {
	out := make([]Stat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stats[id])
	}
	return out
}

// PlayerStats returns player-level stats ordered by ID.
func (s *Schema) PlayerStats() []Stat {
	return s.filter(func(st Stat) bool { return st.Level == LevelPlayer })
}

// EfficiencyStats returns player-level stats flagged for team efficiency.
func (s *Schema) EfficiencyStats() []Stat {
	return s.filter(func(st Stat) bool { return st.Level == LevelPlayer && st.Efficiency })
}

// NumericColumns lists the distinct float and int player columns.
func (s *Schema) NumericColumns() []Column {
	seen := make(map[Column]struct{})
	out := make([]Column, 0, len(s.order))
	for _, st := range s.PlayerStats() {
		if st.Type == TypeString || st.Column.IsZero() {
			continue
		}
		if _, ok := seen[st.Column]; ok {
			continue
		}
		seen[st.Column] = struct{}{}
		out = append(out, st.Column)
	}
	return out
}

func (s *Schema) filter(keep func(Stat) bool) []Stat {
	out := make([]Stat, 0, len(s.order))
	for _, id := range s.order {
		if st := s.stats[id]; keep(st) {
			out = append(out, st)
		}
	}
	return out
}

func normalizePosition(p string) string { return strings.TrimSpace(p) }
