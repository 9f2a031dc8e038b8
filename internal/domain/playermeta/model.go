package playermeta

import (
	"strings"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
)

// Record is the persisted reconciliation state of one roster player.
type Record struct {
	ID                   int64
	PlayerName           string
	Team                 string
	ESPNPosition         string
	Status               string
	FootballReferenceURL string
	MatchVerification    bool
	NFLReferencePosition string
	StatsDict            map[statschema.StatID]float64
	FullPlayerLog        []map[string]any
	UpdatedAt            time.Time
}

// SameIdentity reports an exact (name, team, position) match.
func (r Record) SameIdentity(name, team, position string) bool {
	return r.PlayerName == name && r.Team == team && r.ESPNPosition == position
}

// Aggregatable reports whether the record may feed team efficiencies.
func (r Record) Aggregatable() bool {
	return r.MatchVerification && strings.TrimSpace(r.FootballReferenceURL) != "" && len(r.StatsDict) > 0
}

// NewRecord is the first-sighting payload.
type NewRecord struct {
	PlayerName   string
	Team         string
	ESPNPosition string
	Status       string
	UpdatedAt    time.Time
}

// Verification is written after a resolution attempt.
type Verification struct {
	FootballReferenceURL string
	MatchVerification    bool
	NFLReferencePosition string
	UpdatedAt            time.Time
}

// Stats is written after aggregation of a verified player.
type Stats struct {
	StatsDict     map[statschema.StatID]float64
	FullPlayerLog []map[string]any
	UpdatedAt     time.Time
}
