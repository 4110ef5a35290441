package mission

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nhle/mission-tracker/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

// seedEntry is one demo mission. Times are offsets from the seeding moment.
type seedEntry struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Priority    model.Priority `yaml:"priority"`
	Created     string         `yaml:"created"`
	Target      string         `yaml:"target"`
	Completed   string         `yaml:"completed"`
}

type seedFile struct {
	Missions []seedEntry `yaml:"missions"`
}

// ParseSeed decodes a seed document and resolves its offsets against now.
// A mission with a completed offset is seeded as completed; everything else
// starts active and is left to CheckOverdue.
func ParseSeed(data []byte, now time.Time) ([]model.Mission, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	missions := make([]model.Mission, 0, len(f.Missions))
	for i, e := range f.Missions {
		created, err := offset(now, e.Created)
		if err != nil {
			return nil, fmt.Errorf("seed mission %d created: %w", i, err)
		}
		target, err := offset(now, e.Target)
		if err != nil {
			return nil, fmt.Errorf("seed mission %d target: %w", i, err)
		}
		completed, err := offset(now, e.Completed)
		if err != nil {
			return nil, fmt.Errorf("seed mission %d completed: %w", i, err)
		}

		m := model.Mission{
			Title:       e.Title,
			Description: e.Description,
			Priority:    e.Priority.OrDefault(),
			Status:      model.StatusActive,
			TargetAt:    target,
		}
		if created != nil {
			m.CreatedAt = *created
		} else {
			m.CreatedAt = now
		}
		if completed != nil {
			m.Status = model.StatusCompleted
			m.CompletedAt = completed
		}
		missions = append(missions, m)
	}
	return missions, nil
}

func offset(now time.Time, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	t := now.Add(d)
	return &t, nil
}

// Seed loads the embedded demo missions without raising notifications and
// returns how many were added.
func (m *Manager) Seed(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	missions, err := ParseSeed(seedYAML, m.now())
	if err != nil {
		return 0, err
	}
	for _, mission := range missions {
		mission.ID = m.newID()
		if err := m.store.CreateMission(ctx, mission); err != nil {
			return 0, fmt.Errorf("seeding missions: %w", err)
		}
	}
	return len(missions), nil
}
