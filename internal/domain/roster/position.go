package roster

import "strings"

// Position groups used by team-level efficiency aggregation.
const (
	GroupQB        = "QB"
	GroupRB        = "RB"
	GroupWR        = "WR"
	GroupTE        = "TE"
	GroupOL        = "OL"
	GroupDefFront  = "DE/LB"
	GroupSecondary = "CB/SS"
)

var positionGroups = map[string]string{
	"FB": GroupRB,

	"RWR": GroupWR, "LWR": GroupWR, "SWR": GroupWR,

	"NT": GroupOL, "G": GroupOL, "C": GroupOL, "LT": GroupOL, "RT": GroupOL,
	"OL": GroupOL, "OT": GroupOL, "RG": GroupOL, "LG": GroupOL,

	"SS": GroupSecondary, "S": GroupSecondary, "CB": GroupSecondary,
	"FS": GroupSecondary, "RCB": GroupSecondary, "LCB": GroupSecondary,

	"DB": GroupDefFront, "DE": GroupDefFront, "OLB": GroupDefFront, "ILB": GroupDefFront,
	"LOLB": GroupDefFront, "LDE": GroupDefFront, "ROLB": GroupDefFront, "RDE": GroupDefFront,
	"DT": GroupDefFront, "LB": GroupDefFront,
}

// PositionGroup maps a depth-chart position to its aggregation group.
// Positions without a mapping group as themselves.
func PositionGroup(position string) string {
	p := strings.TrimSpace(position)
	if g, ok := positionGroups[p]; ok {
		return g
	}
	return p
}
