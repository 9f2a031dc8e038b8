package httpapi

import (
	"math"
	"time"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

type playerDTO struct {
	ID                   int64               `json:"id"`
	PlayerName           string              `json:"player_name"`
	Team                 string              `json:"team"`
	ESPNPosition         string              `json:"espn_position"`
	Status               string              `json:"status"`
	FootballReferenceURL *string             `json:"football_reference_url"`
	MatchVerification    bool                `json:"match_verification"`
	NFLReferencePosition *string             `json:"nfl_reference_position"`
	StatsDict            map[string]*float64 `json:"stats_dict"`
	FullPlayerLog        []map[string]any    `json:"full_player_log"`
	UpdatedAt            string              `json:"updated_at"`
}

type teamEfficiencyDTO struct {
	Team        string                         `json:"team"`
	PlayerCount int                            `json:"player_count"`
	Positions   map[string]map[string]*float64 `json:"positions"`
	Rollups     map[string]map[string]*float64 `json:"rollups"`
	ComputedAt  string                         `json:"computed_at"`
}

func toPlayerDTO(rec playermeta.Record) playerDTO {
	stats := make(map[string]*float64, len(rec.StatsDict))
	for k, v := range rec.StatsDict {
		stats[string(k)] = finiteOrNull(v)
	}

	return playerDTO{
		ID:                   rec.ID,
		PlayerName:           rec.PlayerName,
		Team:                 rec.Team,
		ESPNPosition:         rec.ESPNPosition,
		Status:               rec.Status,
		FootballReferenceURL: optionalString(rec.FootballReferenceURL),
		MatchVerification:    rec.MatchVerification,
		NFLReferencePosition: optionalString(rec.NFLReferencePosition),
		StatsDict:            stats,
		FullPlayerLog:        rec.FullPlayerLog,
		UpdatedAt:            formatTime(rec.UpdatedAt),
	}
}

func toTeamEfficiencyDTO(in usecase.TeamEfficiency) teamEfficiencyDTO {
	return teamEfficiencyDTO{
		Team:        in.Team,
		PlayerCount: in.PlayerCount,
		Positions:   nestedFinite(in.Positions),
		Rollups:     nestedFinite(in.Rollups),
		ComputedAt:  formatTime(in.ComputedAt),
	}
}

func nestedFinite(in map[string]map[string]float64) map[string]map[string]*float64 {
	out := make(map[string]map[string]*float64, len(in))
	for group, stats := range in {
		inner := make(map[string]*float64, len(stats))
		for k, v := range stats {
			inner[k] = finiteOrNull(v)
		}
		out[group] = inner
	}
	return out
}

// finiteOrNull turns NaN and ±Inf into JSON null.
func finiteOrNull(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
