package depthchart

import "context"

// Repository reads scraped depth charts.
type Repository interface {
	ListTeams(ctx context.Context) ([]string, error)
	LatestByTeam(ctx context.Context, team string) (Row, bool, error)
}
