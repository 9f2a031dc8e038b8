package gamelog

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

// Clean applies the game log cleaning rules and coerces every numeric
// column named by schema (plus the efficiency inputs) to float64.
// Columns missing from raw are synthesized as zero.
func Clean(raw RawTable, schema *statschema.Schema) Table {
	columns := reclassify(normalizeHeaders(raw.Columns))
	index := make(map[Column]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	numeric := numericLayout(schema)
	isNumeric := make(map[Column]struct{}, len(numeric))
	for _, c := range numeric {
		isNumeric[c] = struct{}{}
	}

	out := Table{Columns: mergeColumns(columns, numeric)}
	for _, cells := range raw.Rows {
		cell := func(c Column) string {
			i, ok := index[c]
			if !ok || i >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[i])
		}

		if dropRow(cell, numeric) {
			continue
		}

		row := Row{
			Date:  cell(ColDate),
			Team:  cell(ColTeam),
			Text:  make(map[Column]string),
			Stats: make(map[Column]float64, len(numeric)),
		}
		row.Season, _ = SeasonFromDate(row.Date)

		for _, c := range numeric {
			v, ok := parseNumber(cell(c))
			if !ok {
				out.CoercionFailures++
			}
			row.Stats[c] = v
		}
		for _, c := range columns {
			if _, num := isNumeric[c]; num {
				continue
			}
			if v := cell(c); v != "" {
				row.Text[c] = v
			}
		}
		row.Efficiency = ComputeEfficiency(row.Stats)
		out.Rows = append(out.Rows, row)
	}
	return out
}

func dropRow(cell func(Column) string, numeric []Column) bool {
	date := cell(ColDate)
	if date == placeholderHeader {
		return true
	}
	if _, inactive := sentinels[cell(ColOffSnaps)]; inactive {
		return true
	}
	if team := cell(ColTeam); team == "" || team == "0" {
		return true
	}
	if strings.HasPrefix(date, transferPrefix) {
		return true
	}
	for _, c := range numeric {
		if strings.HasPrefix(cell(c), transferPrefix) {
			return true
		}
	}
	return false
}

func normalizeHeaders(cols []Column) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		group := strings.TrimSpace(c.Group)
		field := strings.TrimSpace(c.Field)
		if group == "" || strings.HasPrefix(group, "Unnamed:") {
			group = GroupUnnamed
		}
		if field == "" || strings.HasPrefix(field, "Unnamed:") {
			field = FieldUnnamed
		}
		out[i] = Column{Group: group, Field: field}
	}
	return out
}

// reclassify separates the two "Sk" columns the source publishes: times
// sacked under Passing, and sacks made, which lands under the unnamed
// group (or Tackles) and belongs to Tackles.
func reclassify(cols []Column) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		if c.Field == "Sk" || c.Field == "Sacks" {
			switch c.Group {
			case "Passing":
				c = ColTimesSkd
			case GroupUnnamed, "Tackles":
				c = ColSacks
			}
		}
		out[i] = c
	}
	return out
}

func numericLayout(schema *statschema.Schema) []Column {
	seen := make(map[Column]struct{})
	var out []Column
	add := func(c Column) {
		if _, ok := seen[c]; ok || c.Group == GroupEfficiency {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if schema != nil {
		for _, c := range schema.NumericColumns() {
			add(c)
		}
	}
	for _, c := range efficiencyInputs {
		add(c)
	}
	return out
}

func mergeColumns(present, numeric []Column) []Column {
	seen := make(map[Column]struct{}, len(present))
	out := make([]Column, 0, len(present)+len(numeric))
	for _, c := range present {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, c := range numeric {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// parseNumber treats blanks as zero; unparseable text is zero and reported.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
