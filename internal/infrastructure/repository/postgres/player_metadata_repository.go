package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
	qb "github.com/riskibarqy/antelope-reconciler/internal/platform/querybuilder"
)

type PlayerMetadataRepository struct {
	db *sqlx.DB
}

var _ playermeta.Repository = (*PlayerMetadataRepository)(nil)

func NewPlayerMetadataRepository(db *sqlx.DB) *PlayerMetadataRepository {
	return &PlayerMetadataRepository{db: db}
}

func (r *PlayerMetadataRepository) ListByName(ctx context.Context, name string) ([]playermeta.Record, error) {
	query, args, err := qb.Select(playerMetadataSelectColumns...).From(playerMetadataTable).
		Where(qb.Eq("player_name", name)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player metadata by name query: %w", err)
	}
	return r.selectRecords(ctx, query, args, "select player metadata by name")
}

func (r *PlayerMetadataRepository) GetByID(ctx context.Context, id int64) (playermeta.Record, bool, error) {
	query, args, err := qb.Select(playerMetadataSelectColumns...).From(playerMetadataTable).
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return playermeta.Record{}, false, fmt.Errorf("build get player metadata query: %w", err)
	}

	var row playerMetadataTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playermeta.Record{}, false, nil
		}
		return playermeta.Record{}, false, fmt.Errorf("get player metadata id=%d: %w", id, err)
	}

	rec, err := row.toDomain()
	if err != nil {
		return playermeta.Record{}, false, err
	}
	return rec, true, nil
}

func (r *PlayerMetadataRepository) Insert(ctx context.Context, rec playermeta.NewRecord) (playermeta.Record, error) {
	insertModel := playerMetadataInsertModel{
		PlayerName:   rec.PlayerName,
		Team:         rec.Team,
		ESPNPosition: rec.ESPNPosition,
		Status:       rec.Status,
		CreatedAt:    rec.UpdatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	query, args, err := qb.InsertModel(playerMetadataTable, insertModel, "RETURNING "+strings.Join(playerMetadataSelectColumns, ", "))
	if err != nil {
		return playermeta.Record{}, fmt.Errorf("build insert player metadata query: %w", err)
	}

	var row playerMetadataTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return playermeta.Record{}, fmt.Errorf("insert player metadata name=%s team=%s: %w", rec.PlayerName, rec.Team, err)
	}
	return row.toDomain()
}

func (r *PlayerMetadataRepository) UpdateVerification(ctx context.Context, id int64, v playermeta.Verification) error {
	query, args, err := qb.Update(playerMetadataTable).
		Set("football_reference_url", nullableString(v.FootballReferenceURL)).
		Set("match_verification", v.MatchVerification).
		Set("nfl_reference_position", nullableString(v.NFLReferencePosition)).
		Set("updated_at", v.UpdatedAt).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player verification query: %w", err)
	}
	return r.execUpdate(ctx, id, query, args, "update player verification")
}

func (r *PlayerMetadataRepository) UpdateStats(ctx context.Context, id int64, s playermeta.Stats) error {
	statsDict, err := encodeJSONB(s.StatsDict)
	if err != nil {
		return fmt.Errorf("encode stats_dict id=%d: %w", id, err)
	}
	fullLog, err := encodeJSONB(s.FullPlayerLog)
	if err != nil {
		return fmt.Errorf("encode full_player_log id=%d: %w", id, err)
	}

	query, args, err := qb.Update(playerMetadataTable).
		SetExpr("stats_dict", "?::jsonb", statsDict).
		SetExpr("full_player_log", "?::jsonb", fullLog).
		Set("updated_at", s.UpdatedAt).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player stats query: %w", err)
	}
	return r.execUpdate(ctx, id, query, args, "update player stats")
}

func (r *PlayerMetadataRepository) ListVerifiedByTeam(ctx context.Context, team string) ([]playermeta.Record, error) {
	query, args, err := qb.Select(playerMetadataSelectColumns...).From(playerMetadataTable).
		Where(
			qb.Eq("team", team),
			qb.Eq("match_verification", true),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select verified players query: %w", err)
	}
	return r.selectRecords(ctx, query, args, "select verified players")
}

func (r *PlayerMetadataRepository) ListTeams(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("team").From(playerMetadataTable).
		DistinctOn("team").
		OrderBy("team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player teams query: %w", err)
	}

	var teams []string
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, fmt.Errorf("select player teams: %w", err)
	}
	return teams, nil
}

func (r *PlayerMetadataRepository) LastUpdatedAt(ctx context.Context, name, team, position string) (time.Time, bool, error) {
	query, args, err := qb.Select("updated_at").From(playerMetadataTable).
		Where(
			qb.Eq("player_name", name),
			qb.Eq("team", team),
			qb.Eq("espn_position", position),
		).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build select player last update query: %w", err)
	}

	var updatedAt time.Time
	if err := r.db.GetContext(ctx, &updatedAt, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select player last update name=%s: %w", name, err)
	}
	return updatedAt, true, nil
}

func (r *PlayerMetadataRepository) selectRecords(ctx context.Context, query string, args []any, op string) ([]playermeta.Record, error) {
	var rows []playerMetadataTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]playermeta.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *PlayerMetadataRepository) execUpdate(ctx context.Context, id int64, query string, args []any, op string) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s id=%d: %w", op, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s id=%d: no row updated", op, id)
	}
	return nil
}

func (m playerMetadataTableModel) toDomain() (playermeta.Record, error) {
	rec := playermeta.Record{
		ID:                   m.ID,
		PlayerName:           m.PlayerName,
		Team:                 m.Team,
		ESPNPosition:         m.ESPNPosition,
		Status:               m.Status,
		FootballReferenceURL: nullStringValue(m.FootballReferenceURL),
		MatchVerification:    m.MatchVerification,
		NFLReferencePosition: nullStringValue(m.NFLReferencePosition),
		UpdatedAt:            m.UpdatedAt,
	}

	var stats map[statschema.StatID]float64
	if err := decodeJSONB(m.StatsDict, &stats); err != nil {
		return playermeta.Record{}, fmt.Errorf("decode stats_dict id=%d: %w", m.ID, err)
	}
	var fullLog []map[string]any
	if err := decodeJSONB(m.FullPlayerLog, &fullLog); err != nil {
		return playermeta.Record{}, fmt.Errorf("decode full_player_log id=%d: %w", m.ID, err)
	}
	rec.StatsDict = stats
	rec.FullPlayerLog = fullLog
	return rec, nil
}
