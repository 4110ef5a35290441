package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/mission-tracker/internal/model"
)

const missionColumns = "id, title, description, priority, status, created_at, target_at, completed_at"

// displayOrder groups overdue before active before completed and sorts each
// group newest first. rowid breaks ties between equal timestamps.
const displayOrder = `
	ORDER BY CASE status
		WHEN 'overdue' THEN 0
		WHEN 'active' THEN 1
		ELSE 2
	END, created_at DESC, rowid DESC`

// CreateMission inserts a new mission. The caller assigns the ID.
func (s *SQLiteStore) CreateMission(ctx context.Context, m model.Mission) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("mission title must not be empty")
	}
	if m.ID == "" {
		return fmt.Errorf("mission id must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO missions (`+missionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Description, string(m.Priority.OrDefault()), string(statusOrActive(m.Status)),
		m.CreatedAt.UTC(), utcPtr(m.TargetAt), utcPtr(m.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("creating mission: %w", err)
	}
	return nil
}

// UpdateMission replaces every mutable column of an existing mission.
// CreatedAt is never rewritten.
func (s *SQLiteStore) UpdateMission(ctx context.Context, m model.Mission) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("mission title must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE missions SET
			title = ?, description = ?, priority = ?, status = ?,
			target_at = ?, completed_at = ?
		WHERE id = ?`,
		m.Title, m.Description, string(m.Priority.OrDefault()), string(statusOrActive(m.Status)),
		utcPtr(m.TargetAt), utcPtr(m.CompletedAt),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mission %s: %w", m.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating mission %s: %w", m.ID, ErrMissionNotFound)
	}
	return nil
}

// DeleteMission removes a mission by ID and reports whether a row existed.
func (s *SQLiteStore) DeleteMission(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM missions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting mission %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetMissionByID retrieves a single mission by ID.
func (s *SQLiteStore) GetMissionByID(
	ctx context.Context,
	id string,
) (*model.Mission, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+missionColumns+" FROM missions WHERE id = ?", id)

	m, err := scanMission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting mission %s: %w", id, ErrMissionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting mission %s: %w", id, err)
	}
	return &m, nil
}

// GetMissions retrieves missions matching the filter in display order.
func (s *SQLiteStore) GetMissions(
	ctx context.Context,
	filter MissionFilter,
) ([]model.Mission, error) {
	query, args := buildMissionQuery("SELECT "+missionColumns, filter, true)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying missions: %w", err)
	}
	defer rows.Close()

	var missions []model.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

// GetMissionCount returns the number of stored missions.
func (s *SQLiteStore) GetMissionCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM missions"); err != nil {
		return 0, fmt.Errorf("counting missions: %w", err)
	}
	return count, nil
}

// MarkOverdue moves the given missions to overdue. Only rows still active
// are touched, so completed missions stay completed even if listed.
func (s *SQLiteStore) MarkOverdue(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		"UPDATE missions SET status = ? WHERE status = ? AND id IN (?)",
		string(model.StatusOverdue), string(model.StatusActive), ids,
	)
	if err != nil {
		return 0, fmt.Errorf("building overdue update: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("marking missions overdue: %w", err)
	}
	rows, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing overdue update: %w", err)
	}
	return int(rows), nil
}

// GetStats counts missions per status in a single pass.
func (s *SQLiteStore) GetStats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	err := s.db.GetContext(ctx, &st, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'overdue' THEN 1 ELSE 0 END), 0) AS overdue
		FROM missions`)
	if err != nil {
		return model.Stats{}, fmt.Errorf("computing mission stats: %w", err)
	}
	st.CompletionRate = model.CompletionPercent(st.Completed, st.Total)
	return st, nil
}

// buildMissionQuery constructs the SQL query and args for a MissionFilter.
func buildMissionQuery(selectClause string, filter MissionFilter, ordered bool) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := selectClause + " FROM missions"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if ordered {
		query += displayOrder
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	return query, args
}

// scanMission scans a mission row from sqlx.Row or sqlx.Rows.
func scanMission(row interface{ Scan(dest ...interface{}) error }) (model.Mission, error) {
	var (
		m           model.Mission
		priority    string
		status      string
		targetAt    *time.Time
		completedAt *time.Time
	)

	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &priority, &status,
		&m.CreatedAt, &targetAt, &completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Mission{}, err
	}
	if err != nil {
		return model.Mission{}, fmt.Errorf("scanning mission row: %w", err)
	}

	m.Priority = model.Priority(priority)
	m.Status = model.Status(status)
	m.TargetAt = targetAt
	m.CompletedAt = completedAt

	return m, nil
}

func statusOrActive(st model.Status) model.Status {
	if st == "" {
		return model.StatusActive
	}
	return st
}

// utcPtr normalizes an optional timestamp for storage so text ordering in
// SQLite matches chronological ordering.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
