package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
	qb "github.com/riskibarqy/antelope-reconciler/internal/platform/querybuilder"
)

const depthChartTable = "depth_charts"

type depthChartTableModel struct {
	DepthRowKey string         `db:"depth_row_key"`
	Team        string         `db:"team"`
	Slots       sql.NullString `db:"slots"`
	LastUpdated time.Time      `db:"last_updated"`
}

type DepthChartRepository struct {
	db *sqlx.DB
}

var _ depthchart.Repository = (*DepthChartRepository)(nil)

func NewDepthChartRepository(db *sqlx.DB) *DepthChartRepository {
	return &DepthChartRepository{db: db}
}

func (r *DepthChartRepository) ListTeams(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("team").From(depthChartTable).
		DistinctOn("team").
		OrderBy("team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select depth chart teams query: %w", err)
	}

	var teams []string
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, fmt.Errorf("select depth chart teams: %w", err)
	}
	return teams, nil
}

func (r *DepthChartRepository) LatestByTeam(ctx context.Context, team string) (depthchart.Row, bool, error) {
	query, args, err := qb.Select("depth_row_key", "team", "slots::text AS slots", "last_updated").
		From(depthChartTable).
		Where(qb.Eq("team", team)).
		OrderBy("last_updated DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return depthchart.Row{}, false, fmt.Errorf("build select latest depth chart query: %w", err)
	}

	var row depthChartTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return depthchart.Row{}, false, nil
		}
		return depthchart.Row{}, false, fmt.Errorf("select latest depth chart team=%s: %w", team, err)
	}

	slots, err := decodeSlots(row.Slots)
	if err != nil {
		return depthchart.Row{}, false, fmt.Errorf("decode depth chart slots team=%s: %w", team, err)
	}
	return depthchart.Row{
		Key:         row.DepthRowKey,
		Team:        row.Team,
		LastUpdated: row.LastUpdated,
		Slots:       slots,
	}, true, nil
}

// decodeSlots keeps string cells as-is and re-encodes list or object
// cells so depthchart.CoerceNameStatus sees the raw JSON.
func decodeSlots(raw sql.NullString) (map[string]string, error) {
	var cells map[string]any
	if err := decodeJSONB(raw, &cells); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(cells))
	for slot, cell := range cells {
		switch v := cell.(type) {
		case nil:
		case string:
			out[slot] = v
		default:
			encoded, err := sonic.MarshalString(v)
			if err != nil {
				return nil, fmt.Errorf("slot %s: %w", slot, err)
			}
			out[slot] = encoded
		}
	}
	return out, nil
}
