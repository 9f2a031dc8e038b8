package roster

import (
	"errors"
	"strings"
)

var ErrInvalidIdentity = errors.New("invalid roster identity")

// Identity is one depth-chart entry as seen by the roster source.
type Identity struct {
	Name     string
	Team     string
	Position string
	Status   Status
}

func (i Identity) Validate() error {
	switch {
	case strings.TrimSpace(i.Name) == "":
		return errors.Join(ErrInvalidIdentity, errors.New("player name is required"))
	case strings.TrimSpace(i.Team) == "":
		return errors.Join(ErrInvalidIdentity, errors.New("team is required"))
	case strings.TrimSpace(i.Position) == "":
		return errors.Join(ErrInvalidIdentity, errors.New("position is required"))
	}
	return nil
}

// WorkItem is the queued unit of work for one player refresh.
type WorkItem struct {
	PlayerName     string `json:"PLAYER_NAME" validate:"required"`
	TeamName       string `json:"TEAM_NAME" validate:"required"`
	PlayerPosition string `json:"PLAYER_POSITION" validate:"required"`
	CurrentSeason  int    `json:"currentSeason" validate:"required,gte=1920,lte=2100"`
	Status         string `json:"status" validate:"required"`

	Source      string `json:"source,omitempty"`
	DepthRowKey string `json:"depth_row_key,omitempty"`
	RunID       string `json:"run_id,omitempty"`
}

func (w WorkItem) Validate() error {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(w.PlayerName) == "" {
		missing = append(missing, "PLAYER_NAME")
	}
	if strings.TrimSpace(w.TeamName) == "" {
		missing = append(missing, "TEAM_NAME")
	}
	if strings.TrimSpace(w.PlayerPosition) == "" {
		missing = append(missing, "PLAYER_POSITION")
	}
	if w.CurrentSeason == 0 {
		missing = append(missing, "currentSeason")
	}
	if strings.TrimSpace(w.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return errors.Join(ErrInvalidIdentity, errors.New("missing required fields: "+strings.Join(missing, ", ")))
	}
	return nil
}

// Identity converts the work item into a normalized roster identity.
func (w WorkItem) Identity() Identity {
	return Identity{
		Name:     strings.TrimSpace(w.PlayerName),
		Team:     strings.TrimSpace(w.TeamName),
		Position: strings.TrimSpace(w.PlayerPosition),
		Status:   Status(strings.TrimSpace(w.Status)),
	}
}
