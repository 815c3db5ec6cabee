// ABOUTME: personal_records repository: one row per PR key.
// ABOUTME: Get/upsert/delete/list operations used by PR reconciliation.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/heat/internal/models"
)

// GetRecord fetches the PR for a key, or nil when no record exists.
func (d *DB) GetRecord(key string) (*models.PersonalRecord, error) {
	row := d.h().QueryRow(`
		SELECT exercise_name, duration_minutes, reps, weight_kg, date
		FROM personal_records WHERE exercise_name = ?`, key)

	pr, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return pr, err
}

// UpsertRecord writes the PR row for a key, replacing any previous holder.
func (d *DB) UpsertRecord(pr *models.PersonalRecord) error {
	res, err := d.h().Exec(`
		UPDATE personal_records SET weight_kg = ?, reps = ?, duration_minutes = ?, date = ?
		WHERE exercise_name = ?`,
		pr.WeightKg, pr.Reps, pr.DurationMin, pr.Date.Format(models.DateLayout), pr.Key)
	if err != nil {
		return fmt.Errorf("update personal record: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected > 0 {
		return nil
	}

	_, err = d.h().Exec(`
		INSERT INTO personal_records (exercise_name, weight_kg, reps, duration_minutes, date)
		VALUES (?, ?, ?, ?, ?)`,
		pr.Key, pr.WeightKg, pr.Reps, pr.DurationMin, pr.Date.Format(models.DateLayout))
	if err != nil {
		return fmt.Errorf("insert personal record: %w", err)
	}
	return nil
}

// DeleteRecord removes the PR row for a key. Missing rows are not an error:
// clearing an already-absent PR is a valid outcome of recalculation.
func (d *DB) DeleteRecord(key string) error {
	if _, err := d.h().Exec("DELETE FROM personal_records WHERE exercise_name = ?", key); err != nil {
		return fmt.Errorf("delete personal record: %w", err)
	}
	return nil
}

// ListRecords loads every PR keyed by its derived exercise key.
func (d *DB) ListRecords() (map[string]*models.PersonalRecord, error) {
	rows, err := d.h().Query(`
		SELECT exercise_name, duration_minutes, reps, weight_kg, date
		FROM personal_records ORDER BY exercise_name`)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]*models.PersonalRecord)
	for rows.Next() {
		pr, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records[pr.Key] = pr
	}
	return records, rows.Err()
}

func scanRecord(scan func(...any) error) (*models.PersonalRecord, error) {
	var pr models.PersonalRecord
	var date string

	err := scan(&pr.Key, &pr.DurationMin, &pr.Reps, &pr.WeightKg, &date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan personal record: %w", err)
	}

	pr.Date, err = time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid record date: %w", err)
	}
	return &pr, nil
}
