package store

import (
	"context"
	"errors"

	"github.com/nhle/mission-tracker/internal/model"
)

// ErrMissionNotFound is returned when no mission has the requested ID.
var ErrMissionNotFound = errors.New("mission not found")

// MissionFilter controls filtering for mission queries. Results are always
// returned in display order: overdue, active, completed, then newest first.
type MissionFilter struct {
	Status *model.Status // nil (all) or a single status
	Query  *string       // search title + description
	Limit  int
}

// FilterFor converts a list filter into a query filter.
func FilterFor(f model.Filter) MissionFilter {
	if f == model.FilterAll || f == "" {
		return MissionFilter{}
	}
	st := model.Status(f)
	return MissionFilter{Status: &st}
}

// Store defines the storage interface for missions. Notifications are
// transient and never reach the store.
type Store interface {
	CreateMission(ctx context.Context, m model.Mission) error
	UpdateMission(ctx context.Context, m model.Mission) error
	DeleteMission(ctx context.Context, id string) (bool, error)
	GetMissionByID(ctx context.Context, id string) (*model.Mission, error)
	GetMissions(ctx context.Context, filter MissionFilter) ([]model.Mission, error)
	GetMissionCount(ctx context.Context) (int, error)
	MarkOverdue(ctx context.Context, ids []string) (int, error)
	GetStats(ctx context.Context) (model.Stats, error)
}
