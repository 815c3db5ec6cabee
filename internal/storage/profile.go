// ABOUTME: Singleton user profile and body-metric history repository.
// ABOUTME: The profile table holds exactly one row; metrics are ordered by recency.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/heat/internal/models"
)

// LoadProfile returns the stored profile, or nil when none has been created.
func (d *DB) LoadProfile() (*models.Profile, error) {
	row := d.h().QueryRow(`
		SELECT name, age, height_cm, weight_kg, sex, bmi, bmr, current_streak, last_workout_date
		FROM user_profile LIMIT 1`)

	var (
		p        models.Profile
		lastDate sql.NullString
	)
	err := row.Scan(&p.Name, &p.Age, &p.HeightCm, &p.WeightKg, &p.Sex, &p.BMI, &p.BMR,
		&p.CurrentStreak, &lastDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if lastDate.Valid && lastDate.String != "" {
		t, err := time.Parse(models.DateLayout, lastDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid last workout date: %w", err)
		}
		p.LastWorkoutDate = &t
	}
	return &p, nil
}

// SaveProfile inserts the singleton row if absent, otherwise rewrites the
// identity and physical stats while leaving the streak columns alone.
func (d *DB) SaveProfile(p *models.Profile) error {
	var count int
	if err := d.h().QueryRow("SELECT COUNT(*) FROM user_profile").Scan(&count); err != nil {
		return fmt.Errorf("count profile rows: %w", err)
	}

	if count == 0 {
		_, err := d.h().Exec(`
			INSERT INTO user_profile (name, age, height_cm, weight_kg, sex, bmi, bmr, current_streak, last_workout_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, NULL)`,
			p.Name, p.Age, p.HeightCm, p.WeightKg, p.Sex, p.BMI, p.BMR)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	}

	_, err := d.h().Exec(`
		UPDATE user_profile SET name = ?, age = ?, height_cm = ?, weight_kg = ?, sex = ?, bmi = ?, bmr = ?`,
		p.Name, p.Age, p.HeightCm, p.WeightKg, p.Sex, p.BMI, p.BMR)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateProfile rewrites the full profile row including streak state.
func (d *DB) UpdateProfile(p *models.Profile) error {
	_, err := d.h().Exec(`
		UPDATE user_profile SET name = ?, sex = ?, age = ?, height_cm = ?, weight_kg = ?,
			bmi = ?, bmr = ?, current_streak = ?, last_workout_date = ?`,
		p.Name, p.Sex, p.Age, p.HeightCm, p.WeightKg, p.BMI, p.BMR,
		p.CurrentStreak, nullableDate(p.LastWorkoutDate))
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// InsertBodyMetric stores a snapshot and fills in its generated id.
func (d *DB) InsertBodyMetric(bm *models.BodyMetric) error {
	res, err := d.h().Exec(`
		INSERT INTO body_metrics (age, height_cm, weight_kg, bmi, date)
		VALUES (?, ?, ?, ?, ?)`,
		bm.Age, bm.HeightCm, bm.WeightKg, bm.BMI, bm.Date.Format(models.DateLayout))
	if err != nil {
		return fmt.Errorf("insert body metric: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("body metric id: %w", err)
	}
	bm.ID = id
	return nil
}

// UpdateBodyMetric rewrites an existing snapshot.
func (d *DB) UpdateBodyMetric(bm *models.BodyMetric) error {
	res, err := d.h().Exec(`
		UPDATE body_metrics SET weight_kg = ?, height_cm = ?, age = ?, bmi = ?, date = ? WHERE id = ?`,
		bm.WeightKg, bm.HeightCm, bm.Age, bm.BMI, bm.Date.Format(models.DateLayout), bm.ID)
	if err != nil {
		return fmt.Errorf("update body metric: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("body metric not found: %d", bm.ID)
	}
	return nil
}

// DeleteBodyMetric removes a snapshot by id.
func (d *DB) DeleteBodyMetric(id int64) error {
	res, err := d.h().Exec("DELETE FROM body_metrics WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete body metric: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("body metric not found: %d", id)
	}
	return nil
}

// ListBodyMetrics loads the snapshot history, newest first.
func (d *DB) ListBodyMetrics() ([]*models.BodyMetric, error) {
	rows, err := d.h().Query(`
		SELECT id, age, height_cm, weight_kg, bmi, date
		FROM body_metrics ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*models.BodyMetric
	for rows.Next() {
		var bm models.BodyMetric
		var date string
		if err := rows.Scan(&bm.ID, &bm.Age, &bm.HeightCm, &bm.WeightKg, &bm.BMI, &date); err != nil {
			return nil, fmt.Errorf("scan body metric: %w", err)
		}
		bm.Date, err = time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid body metric date: %w", err)
		}
		metrics = append(metrics, &bm)
	}
	return metrics, rows.Err()
}
