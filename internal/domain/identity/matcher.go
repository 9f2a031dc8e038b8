package identity

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
)

const DefaultNameThreshold = 6

// freeAgentQualifiers are appended by the source to teams of unsigned players.
var freeAgentQualifiers = []string{"(Unsigned draft pick)"}

// positionEquivalents lists, per roster position, the source positions that
// denote the same role. Lookups are keyed by the roster side only.
var positionEquivalents = map[string][]string{
	"CB": {"DB"},
	"SS": {"S", "FS", "DB"},
	"DE": {"LB", "OLB", "EDGE", "DT", "DL"},
	"LB": {"DT", "DL", "DE", "EDGE"},
}

// Matcher decides whether a scraped identity is the roster player.
type Matcher struct {
	// NameThreshold is the exclusive upper bound on edit distance for a
	// fuzzy name match.
	NameThreshold int
}

func NewMatcher(threshold int) Matcher {
	if threshold <= 0 {
		threshold = DefaultNameThreshold
	}
	return Matcher{NameThreshold: threshold}
}

func (m Matcher) Match(r roster.Identity, s Scraped) MatchResult {
	var res MatchResult

	res.NameMatched, res.EditDistance = m.matchName(r.Name, s.Name)
	res.PositionReason = matchPosition(r.Position, s.Position)
	res.PositionMatched = res.PositionReason != PositionNoMatch
	res.TeamMatched = matchTeam(r.Team, s.Team)
	res.Matched = res.NameMatched && res.PositionMatched && res.TeamMatched
	return res
}

func (m Matcher) matchName(rosterName, scrapedName string) (bool, int) {
	if rosterName == scrapedName {
		return true, 0
	}
	threshold := m.NameThreshold
	if threshold <= 0 {
		threshold = DefaultNameThreshold
	}
	distance := levenshtein.ComputeDistance(rosterName, scrapedName)
	if distance < threshold {
		return true, distance
	}
	return false, 0
}

func matchPosition(rosterPosition, scrapedPosition string) PositionReason {
	rp := strings.TrimSpace(rosterPosition)
	sp := strings.TrimSpace(scrapedPosition)

	switch {
	case rp == sp:
		return PositionExact
	// Players who changed role keep their old listing on the source.
	case rp == "RB" && sp == "WR":
		return PositionMoved
	case rp != "" && strings.Contains(scrapedPosition, rp):
		return PositionContained
	case slices.Contains(positionEquivalents[rp], sp):
		return PositionEquivalence
	}
	return PositionNoMatch
}

func matchTeam(rosterTeam, scrapedTeam string) bool {
	for _, q := range freeAgentQualifiers {
		scrapedTeam = strings.ReplaceAll(scrapedTeam, q, "")
	}
	return strings.TrimSpace(rosterTeam) == strings.TrimSpace(scrapedTeam)
}
