package model

import "math"

// Stats summarizes the mission collection.
type Stats struct {
	Total          int `json:"total" db:"total"`
	Active         int `json:"active" db:"active"`
	Completed      int `json:"completed" db:"completed"`
	Overdue        int `json:"overdue" db:"overdue"`
	CompletionRate int `json:"completion_rate" db:"-"`
}

// CompletionPercent returns round(100*completed/total), or 0 for an empty
// collection.
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
