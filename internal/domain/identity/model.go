package identity

// Scraped is the identity advertised by a statistics-source player page.
type Scraped struct {
	Name      string
	Position  string
	Team      string
	SourceURL string
}

// PositionReason records which rule accepted a position pair.
type PositionReason string

const (
	PositionNoMatch     PositionReason = ""
	PositionExact       PositionReason = "exact"
	PositionMoved       PositionReason = "moved_position"
	PositionContained   PositionReason = "contained"
	PositionEquivalence PositionReason = "equivalence"
)

// MatchResult is the verdict of comparing a roster identity with a scraped one.
type MatchResult struct {
	Matched         bool           `json:"matched"`
	NameMatched     bool           `json:"name_matched"`
	PositionMatched bool           `json:"position_matched"`
	TeamMatched     bool           `json:"team_matched"`
	EditDistance    int            `json:"edit_distance"`
	PositionReason  PositionReason `json:"position_reason,omitempty"`
}
