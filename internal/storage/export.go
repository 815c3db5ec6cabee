// ABOUTME: Full-data export and import for backup and migration.
// ABOUTME: Supports JSON and YAML snapshots tagged with a generated id.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/heat/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData is the full snapshot format for tracker data.
type ExportData struct {
	SnapshotID  uuid.UUID                `json:"snapshot_id" yaml:"snapshot_id"`
	Version     string                   `json:"version" yaml:"version"`
	ExportedAt  time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool        string                   `json:"tool" yaml:"tool"`
	Profile     *models.Profile          `json:"profile,omitempty" yaml:"profile,omitempty"`
	BodyMetrics []*models.BodyMetric     `json:"body_metrics" yaml:"body_metrics"`
	Workouts    []*models.Workout        `json:"workouts" yaml:"workouts"`
	Records     []*models.PersonalRecord `json:"personal_records" yaml:"personal_records"`
	Goals       []*models.Goal           `json:"goals" yaml:"goals"`
}

// GetAllData retrieves all user data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	profile, err := d.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}

	bodyMetrics, err := d.ListBodyMetrics()
	if err != nil {
		return nil, fmt.Errorf("export body metrics: %w", err)
	}

	workouts, err := d.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}

	recordMap, err := d.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("export personal records: %w", err)
	}
	records := make([]*models.PersonalRecord, 0, len(recordMap))
	for _, pr := range recordMap {
		records = append(records, pr)
	}

	goals, err := d.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("export goals: %w", err)
	}

	return &ExportData{
		SnapshotID:  uuid.New(),
		Version:     "1.0",
		ExportedAt:  time.Now(),
		Tool:        "heat",
		Profile:     profile,
		BodyMetrics: bodyMetrics,
		Workouts:    workouts,
		Records:     records,
		Goals:       goals,
	}, nil
}

// ImportData loads a snapshot into the store inside one transaction.
func (d *DB) ImportData(data *ExportData) error {
	if err := d.Begin(); err != nil {
		return err
	}

	if err := d.importAll(data); err != nil {
		_ = d.Rollback()
		return err
	}

	return d.Commit()
}

func (d *DB) importAll(data *ExportData) error {
	if data.Profile != nil {
		if err := d.SaveProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
		if err := d.UpdateProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile streak: %w", err)
		}
	}

	for _, bm := range data.BodyMetrics {
		if err := d.InsertBodyMetric(bm); err != nil {
			return fmt.Errorf("import body metric: %w", err)
		}
	}

	for _, w := range data.Workouts {
		if err := d.InsertWorkout(w); err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
	}

	for _, pr := range data.Records {
		if err := d.UpsertRecord(pr); err != nil {
			return fmt.Errorf("import personal record: %w", err)
		}
	}

	for _, g := range data.Goals {
		if err := d.InsertGoal(g); err != nil {
			return fmt.Errorf("import goal: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as indented JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports a snapshot from JSON bytes.
func (d *DB) ImportJSON(raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&data)
}

// ImportYAML imports a snapshot from YAML bytes.
func (d *DB) ImportYAML(raw []byte) error {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal YAML: %w", err)
	}
	return d.ImportData(&data)
}
