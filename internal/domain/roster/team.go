package roster

import "strings"

// teamRenames is applied in order as substring replacements, so longer
// names appear before the bare codes they contain.
var teamRenames = [][2]string{
	{"New England Patriots", "NE"}, {"NE Patriots", "NE"},
	{"Miami Dolphins", "MIA"}, {"MIA Dolphins", "MIA"},
	{"Buffalo Bills", "BUF"}, {"BUF Bills", "BUF"},
	{"New York Jets", "NYJ"}, {"NY Jets", "NYJ"},
	{"NWE", "NE"},

	{"Baltimore Ravens", "BAL"}, {"Pittsburgh Steelers", "PIT"},
	{"Cleveland Browns", "CLE"}, {"Cincinnati Bengals", "CIN"},
	{"BAL Ravens", "BAL"}, {"PIT Steelers", "PIT"},
	{"CLE Browns", "CLE"}, {"CIN Bengals", "CIN"},

	{"Houston Texans", "HOU"}, {"Jacksonville Jaguars", "JAX"},
	{"Tennessee Titans", "TEN"}, {"Indianapolis Colts", "IND"},
	{"HOU Texans", "HOU"}, {"JAX Jaguars", "JAX"},
	{"TEN Titans", "TEN"}, {"IND Colts", "IND"},

	{"OAK", "LV"}, {"Oakland Raiders", "LV"}, {"Las Vegas Raiders", "LV"}, {"LV Raiders", "LV"},
	{"Kansas City Chiefs", "KC"}, {"KC Chiefs", "KC"},
	{"Denver Broncos", "DEN"},
	{"Los Angeles Chargers", "LAC"}, {"San Diego Chargers", "LAC"},
	{"DEN Broncos", "DEN"}, {"LA Chargers", "LAC"}, {"LAC Chargers", "LAC"},
	{"KAN", "KC"}, {"LVR", "LV"},

	{"New York Giants", "NYG"}, {"Philadelphia Eagles", "PHI"}, {"Dallas Cowboys", "DAL"},
	{"NY Giants", "NYG"}, {"PHI Eagles", "PHI"}, {"DAL Cowboys", "DAL"},
	{"Washington Redskins", "WAS"}, {"Washington Commanders", "WAS"},
	{"Washington", "WAS"}, {"WSH", "WAS"}, {"Washington Football Team", "WAS"},
	{"WAS Commanders", "WAS"}, {"WAS Football Team", "WAS"},

	{"Green Bay Packers", "GB"}, {"Minnesota Vikings", "MIN"},
	{"Detroit Lions", "DET"}, {"Chicago Bears", "CHI"},
	{"GB Packers", "GB"}, {"MIN Vikings", "MIN"},
	{"DET Lions", "DET"}, {"CHI Bears", "CHI"},
	{"GNB", "GB"},

	{"New Orleans Saints", "NO"}, {"Atlanta Falcons", "ATL"},
	{"Carolina Panthers", "CAR"}, {"Tampa Bay Buccaneers", "TB"},
	{"NO Saints", "NO"}, {"ATL Falcons", "ATL"},
	{"CAR Panthers", "CAR"}, {"TB Buccaneers", "TB"},
	{"NOR", "NO"}, {"TAM", "TB"},

	{"San Francisco 49ers", "SF"}, {"Seattle Seahawks", "SEA"},
	{"Los Angeles Rams", "LAR"}, {"St. Louis Rams", "LAR"},
	{"Arizona Cardinals", "ARI"},
	{"SF 49ers", "SF"}, {"SEA Seahawks", "SEA"},
	{"LA Rams", "LAR"}, {"ARI Cardinals", "ARI"},
	{"SFO", "SF"},
}

// NormalizeTeam rewrites franchise names and alternate codes found in s
// to the canonical abbreviations.
func NormalizeTeam(s string) string {
	out := s
	for _, r := range teamRenames {
		out = strings.ReplaceAll(out, r[0], r[1])
	}
	return out
}
