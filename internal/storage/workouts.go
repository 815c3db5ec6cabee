// ABOUTME: Workout CRUD and aggregate queries over the workouts table.
// ABOUTME: Includes the best-remaining-history query used for PR regeneration.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/heat/internal/models"
)

// InsertWorkout stores a new workout and fills in its generated id.
func (d *DB) InsertWorkout(w *models.Workout) error {
	query := `
		INSERT INTO workouts (
			exercise_name, kind, date, duration_minutes, calories_burned,
			distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := d.h().Exec(query,
		w.Exercise,
		string(w.Kind),
		w.Date.Format(models.DateLayout),
		w.DurationMin,
		w.CaloriesBurned,
		cardioDistance(w),
		strengthInt(w, func(s *models.StrengthDetails) int { return s.Sets }),
		strengthInt(w, func(s *models.StrengthDetails) int { return s.Reps }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.ExternalWeightKg }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.TrainingVolumeKg }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.BodyWeightFactor }),
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("workout id: %w", err)
	}
	w.ID = id
	return nil
}

// UpdateWorkout replaces every mutable field of an existing workout row.
func (d *DB) UpdateWorkout(w *models.Workout) error {
	query := `
		UPDATE workouts SET
			exercise_name = ?, kind = ?, date = ?, duration_minutes = ?, calories_burned = ?,
			distance_km = ?, sets = ?, reps = ?, weight_kg = ?, volume_kg = ?, bodyweight_factor = ?
		WHERE id = ?
	`
	res, err := d.h().Exec(query,
		w.Exercise,
		string(w.Kind),
		w.Date.Format(models.DateLayout),
		w.DurationMin,
		w.CaloriesBurned,
		cardioDistance(w),
		strengthInt(w, func(s *models.StrengthDetails) int { return s.Sets }),
		strengthInt(w, func(s *models.StrengthDetails) int { return s.Reps }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.ExternalWeightKg }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.TrainingVolumeKg }),
		strengthFloat(w, func(s *models.StrengthDetails) float64 { return s.BodyWeightFactor }),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("workout not found: %d", w.ID)
	}
	return nil
}

// DeleteWorkout removes a workout row by id.
func (d *DB) DeleteWorkout(id int64) error {
	res, err := d.h().Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("workout not found: %d", id)
	}
	return nil
}

// ListWorkouts retrieves the full workout history, newest first.
func (d *DB) ListWorkouts() ([]*models.Workout, error) {
	rows, err := d.h().Query(`
		SELECT id, exercise_name, kind, date, duration_minutes, calories_burned,
		       distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		FROM workouts ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// BestRemaining returns the best workout left in history for a PR key, or nil
// when no history remains. Ordering encodes the tie-break rules: cardio by
// duration then recency, unloaded strength by reps then recency, loaded and
// plain strength by weight, reps, recency.
func (d *DB) BestRemaining(exercise, key string, kind models.Kind) (*models.Workout, error) {
	var query string
	switch {
	case kind == models.Cardio:
		query = `SELECT id, exercise_name, kind, date, duration_minutes, calories_burned,
		       distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		FROM workouts WHERE exercise_name = ? AND kind = 'Cardio'
		ORDER BY duration_minutes DESC, date DESC LIMIT 1`
	case strings.HasSuffix(key, "(reps)"):
		query = `SELECT id, exercise_name, kind, date, duration_minutes, calories_burned,
		       distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		FROM workouts WHERE exercise_name = ? AND kind = 'Strength' AND weight_kg = 0
		ORDER BY reps DESC, date DESC LIMIT 1`
	case strings.HasSuffix(key, "(loaded)"):
		query = `SELECT id, exercise_name, kind, date, duration_minutes, calories_burned,
		       distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		FROM workouts WHERE exercise_name = ? AND kind = 'Strength' AND weight_kg > 0
		ORDER BY weight_kg DESC, reps DESC, date DESC LIMIT 1`
	default:
		query = `SELECT id, exercise_name, kind, date, duration_minutes, calories_burned,
		       distance_km, sets, reps, weight_kg, volume_kg, bodyweight_factor
		FROM workouts WHERE exercise_name = ? AND kind = 'Strength'
		ORDER BY weight_kg DESC, reps DESC, date DESC LIMIT 1`
	}

	rows, err := d.h().Query(query, exercise)
	if err != nil {
		return nil, fmt.Errorf("best remaining workout: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanWorkout(rows)
}

// Aggregate queries scoped by exercise name and start date. They re-query the
// store directly so an open transaction sees its own writes.

// MaxWeightLifted returns the heaviest external weight for an exercise since
// a start date.
func (d *DB) MaxWeightLifted(exercise string, since time.Time) (float64, error) {
	var v sql.NullFloat64
	err := d.h().QueryRow(
		"SELECT MAX(weight_kg) FROM workouts WHERE exercise_name = ? COLLATE NOCASE AND date >= ?",
		exercise, since.Format(models.DateLayout)).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("max weight lifted: %w", err)
	}
	return v.Float64, nil
}

// MaxReps returns the highest single-workout rep count for an exercise since
// a start date.
func (d *DB) MaxReps(exercise string, since time.Time) (int, error) {
	var v sql.NullInt64
	err := d.h().QueryRow(
		"SELECT MAX(reps) FROM workouts WHERE exercise_name = ? COLLATE NOCASE AND date >= ?",
		exercise, since.Format(models.DateLayout)).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("max reps: %w", err)
	}
	return int(v.Int64), nil
}

// TotalMinutes sums the duration of an exercise since a start date.
func (d *DB) TotalMinutes(exercise string, since time.Time) (int, error) {
	var v int
	err := d.h().QueryRow(
		"SELECT COALESCE(SUM(duration_minutes), 0) FROM workouts WHERE exercise_name = ? COLLATE NOCASE AND date >= ?",
		exercise, since.Format(models.DateLayout)).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("total minutes: %w", err)
	}
	return v, nil
}

// WorkoutFrequency counts workouts of an exercise since a start date.
func (d *DB) WorkoutFrequency(exercise string, since time.Time) (int, error) {
	var v int
	err := d.h().QueryRow(
		"SELECT COUNT(*) FROM workouts WHERE exercise_name = ? COLLATE NOCASE AND date >= ?",
		exercise, since.Format(models.DateLayout)).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("workout frequency: %w", err)
	}
	return v, nil
}

func scanWorkout(rows *sql.Rows) (*models.Workout, error) {
	var (
		w        models.Workout
		kind     string
		date     string
		distance sql.NullFloat64
		sets     sql.NullInt64
		reps     sql.NullInt64
		weight   sql.NullFloat64
		volume   sql.NullFloat64
		factor   sql.NullFloat64
	)

	err := rows.Scan(&w.ID, &w.Exercise, &kind, &date, &w.DurationMin, &w.CaloriesBurned,
		&distance, &sets, &reps, &weight, &volume, &factor)
	if err != nil {
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.Kind, err = models.ParseKind(kind)
	if err != nil {
		return nil, fmt.Errorf("invalid workout kind in database: %w", err)
	}
	w.Date, err = time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid workout date: %w", err)
	}

	switch w.Kind {
	case models.Strength:
		w.Strength = &models.StrengthDetails{
			Sets:             int(sets.Int64),
			Reps:             int(reps.Int64),
			ExternalWeightKg: weight.Float64,
			TrainingVolumeKg: volume.Float64,
			BodyWeightFactor: factor.Float64,
		}
	case models.Cardio:
		w.Cardio = &models.CardioDetails{DistanceKm: distance.Float64}
	}

	return &w, nil
}

func cardioDistance(w *models.Workout) any {
	if w.Cardio != nil {
		return w.Cardio.DistanceKm
	}
	return nil
}

func strengthInt(w *models.Workout, f func(*models.StrengthDetails) int) any {
	if w.Strength != nil {
		return f(w.Strength)
	}
	return nil
}

func strengthFloat(w *models.Workout, f func(*models.StrengthDetails) float64) any {
	if w.Strength != nil {
		return f(w.Strength)
	}
	return nil
}
