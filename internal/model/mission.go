package model

import "time"

// Status is the lifecycle state of a mission.
type Status string

// Mission status constants.
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Mission is a user-created goal with an optional deadline.
type Mission struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Status      Status     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	TargetAt    *time.Time `json:"target_at,omitempty" db:"target_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// IsCompleted reports whether the mission reached its terminal state.
func (m Mission) IsCompleted() bool { return m.Status == StatusCompleted }

// IsOverdue reports whether the mission has been marked overdue.
func (m Mission) IsOverdue() bool { return m.Status == StatusOverdue }

// PastTarget reports whether an active mission's deadline lies strictly
// before now. Completed and already-overdue missions never qualify.
func (m Mission) PastTarget(now time.Time) bool {
	return m.Status == StatusActive && m.TargetAt != nil && m.TargetAt.Before(now)
}

// MissionPatch carries a partial update. Nil fields are left untouched.
// Status and CompletedAt are merged as given; no invariant is re-derived.
type MissionPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	TargetAt    *time.Time
	ClearTarget bool
	Status      *Status
	CompletedAt *time.Time
}

// Apply merges the patch into m and returns the result.
func (p MissionPatch) Apply(m Mission) Mission {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Priority != nil {
		m.Priority = *p.Priority
	}
	if p.ClearTarget {
		m.TargetAt = nil
	} else if p.TargetAt != nil {
		t := *p.TargetAt
		m.TargetAt = &t
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		m.CompletedAt = &t
	}
	return m
}

// Filter selects a subset of missions by status. FilterAll matches everything.
type Filter string

// Filter constants.
const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterOverdue}

// ParseFilter maps a string to a Filter, falling back to FilterAll.
func ParseFilter(s string) Filter {
	for _, f := range Filters {
		if string(f) == s {
			return f
		}
	}
	return FilterAll
}

// Matches reports whether m passes the filter.
func (f Filter) Matches(m Mission) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return string(m.Status) == string(f)
}
