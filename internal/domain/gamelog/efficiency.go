package gamelog

// Efficiency holds per-snap ratios for one game. Zero snaps yield Inf or NaN.
type Efficiency struct {
	PassYards          float64
	RushYards          float64
	RecYards           float64
	TotalYards         float64
	OffensiveTDs       float64
	OffensiveTouchdown float64
	OffensiveYards     float64
	Tackle             float64
	Sack               float64
	QBPressure         float64
	Turnover           float64
	PassesDefended     float64
}

var efficiencyFields = []string{
	"pass_yards_efficiency",
	"rush_yards_efficiency",
	"rec_yards_efficiency",
	"total_yds_eff",
	"OffensiveTDs",
	"OffensiveTouchdownEfficiency",
	"OffensiveYards",
	"O_td_eff",
	"tackle_efficiency",
	"sack_efficiency",
	"QB_pressure_eff",
	"Turnover_eff",
	"PassesDefended_eff",
}

// Lookup returns the efficiency stored under its serialized field name.
func (e Efficiency) Lookup(field string) (float64, bool) {
	switch field {
	case "pass_yards_efficiency":
		return e.PassYards, true
	case "rush_yards_efficiency":
		return e.RushYards, true
	case "rec_yards_efficiency":
		return e.RecYards, true
	case "total_yds_eff":
		return e.TotalYards, true
	case "OffensiveTDs":
		return e.OffensiveTDs, true
	case "OffensiveTouchdownEfficiency", "O_td_eff":
		return e.OffensiveTouchdown, true
	case "OffensiveYards":
		return e.OffensiveYards, true
	case "tackle_efficiency":
		return e.Tackle, true
	case "sack_efficiency":
		return e.Sack, true
	case "QB_pressure_eff":
		return e.QBPressure, true
	case "Turnover_eff":
		return e.Turnover, true
	case "PassesDefended_eff":
		return e.PassesDefended, true
	}
	return 0, false
}

// ComputeEfficiency derives the per-snap figures from one game's stats.
func ComputeEfficiency(s map[Column]float64) Efficiency {
	off := s[ColOffSnaps]
	def := s[ColDefSnaps]

	var e Efficiency
	e.PassYards = s[ColPassYds] / off
	e.RushYards = s[ColRushYds] / off
	e.RecYards = s[ColRecYds] / off
	e.TotalYards = e.PassYards + e.RushYards + e.RecYards

	e.OffensiveTDs = s[ColRushTD] + s[ColRecTD]
	e.OffensiveTouchdown = e.OffensiveTDs / off
	e.OffensiveYards = s[ColRushYds] + s[ColRecYds]

	e.Tackle = (s[ColSolo] + s[ColAst]) / def
	e.Sack = s[ColSacks] / def
	e.QBPressure = (s[ColQBHits] + s[ColSacks]) / def
	e.Turnover = (s[ColDefInt] + s[ColFF] + s[ColPD]) / def
	e.PassesDefended = s[ColPD] / def
	return e
}
