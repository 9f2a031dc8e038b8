package postgres

import (
	"database/sql"
	"time"
)

const playerMetadataTable = "player_metadata"

var playerMetadataSelectColumns = []string{
	"id",
	"player_name",
	"team",
	"espn_position",
	"status",
	"football_reference_url",
	"match_verification",
	"nfl_reference_position",
	"stats_dict::text AS stats_dict",
	"full_player_log::text AS full_player_log",
	"updated_at",
}

type playerMetadataTableModel struct {
	ID                   int64          `db:"id"`
	PlayerName           string         `db:"player_name"`
	Team                 string         `db:"team"`
	ESPNPosition         string         `db:"espn_position"`
	Status               string         `db:"status"`
	FootballReferenceURL sql.NullString `db:"football_reference_url"`
	MatchVerification    bool           `db:"match_verification"`
	NFLReferencePosition sql.NullString `db:"nfl_reference_position"`
	StatsDict            sql.NullString `db:"stats_dict"`
	FullPlayerLog        sql.NullString `db:"full_player_log"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

type playerMetadataInsertModel struct {
	PlayerName   string    `db:"player_name"`
	Team         string    `db:"team"`
	ESPNPosition string    `db:"espn_position"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
