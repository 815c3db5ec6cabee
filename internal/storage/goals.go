// ABOUTME: Goal repository: CRUD plus status and current-value updates.
// ABOUTME: Batch status update backs goal completion and the expiry sweep.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/heat/internal/models"
)

// InsertGoal stores a new goal and fills in its generated id.
func (d *DB) InsertGoal(g *models.Goal) error {
	res, err := d.h().Exec(`
		INSERT INTO goals (title, exercise_name, start_date, end_date, goal_type, current_value, target_value, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Exercise, g.StartDate.Format(models.DateLayout), nullableDate(g.EndDate),
		string(g.Type), g.CurrentValue, g.TargetValue, string(g.Status))
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("goal id: %w", err)
	}
	g.ID = id
	return nil
}

// UpdateGoal rewrites the user-editable fields plus status.
func (d *DB) UpdateGoal(g *models.Goal) error {
	res, err := d.h().Exec(`
		UPDATE goals SET title = ?, end_date = ?, target_value = ?, status = ? WHERE id = ?`,
		g.Title, nullableDate(g.EndDate), g.TargetValue, string(g.Status), g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("goal not found: %d", g.ID)
	}
	return nil
}

// UpdateGoalStatus sets one goal's status.
func (d *DB) UpdateGoalStatus(id int64, status models.GoalStatus) error {
	if _, err := d.h().Exec("UPDATE goals SET status = ? WHERE id = ?", string(status), id); err != nil {
		return fmt.Errorf("update goal status: %w", err)
	}
	return nil
}

// UpdateGoalStatusBatch sets the status of several goals in one statement.
func (d *DB) UpdateGoalStatusBatch(ids []int64, status models.GoalStatus) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(status))
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf("UPDATE goals SET status = ? WHERE id IN (%s)", placeholders)
	if _, err := d.h().Exec(query, args...); err != nil {
		return fmt.Errorf("batch update goal status: %w", err)
	}
	return nil
}

// UpdateGoalCurrentValue persists a recomputed current value.
func (d *DB) UpdateGoalCurrentValue(id int64, value float64) error {
	if _, err := d.h().Exec("UPDATE goals SET current_value = ? WHERE id = ?", value, id); err != nil {
		return fmt.Errorf("update goal current value: %w", err)
	}
	return nil
}

// DeleteGoal removes a goal by id.
func (d *DB) DeleteGoal(id int64) error {
	res, err := d.h().Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("goal not found: %d", id)
	}
	return nil
}

// ListGoals loads all goals, newest first.
func (d *DB) ListGoals() ([]*models.Goal, error) {
	rows, err := d.h().Query(`
		SELECT id, title, exercise_name, start_date, end_date, goal_type, current_value, target_value, status
		FROM goals ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func scanGoal(rows *sql.Rows) (*models.Goal, error) {
	var (
		g        models.Goal
		exercise sql.NullString
		start    string
		end      sql.NullString
		goalType string
		status   string
	)

	err := rows.Scan(&g.ID, &g.Title, &exercise, &start, &end, &goalType,
		&g.CurrentValue, &g.TargetValue, &status)
	if err != nil {
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.Exercise = exercise.String
	g.StartDate, err = time.Parse(models.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid goal start date: %w", err)
	}
	if end.Valid && end.String != "" {
		endDate, err := time.Parse(models.DateLayout, end.String)
		if err != nil {
			return nil, fmt.Errorf("invalid goal end date: %w", err)
		}
		g.EndDate = &endDate
	}
	g.Type, err = models.ParseGoalType(goalType)
	if err != nil {
		return nil, fmt.Errorf("invalid goal type in database: %w", err)
	}
	g.Status, err = models.ParseGoalStatus(status)
	if err != nil {
		return nil, fmt.Errorf("invalid goal status in database: %w", err)
	}

	return &g, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.DateLayout)
}
