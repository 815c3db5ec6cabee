// ABOUTME: PersonalRecord model keyed by derived PR key.
// ABOUTME: At most one record exists per key; fields mirror the source workout.
package models

import "time"

// PersonalRecord is the best-ever performance for a PR key. Which fields are
// meaningful depends on the lineage: weight+reps for loaded strength work,
// reps alone for unloaded strength work, duration for cardio.
type PersonalRecord struct {
	Key         string    `json:"key" yaml:"key"`
	DurationMin int       `json:"duration_minutes" yaml:"duration_minutes"`
	Reps        int       `json:"reps" yaml:"reps"`
	WeightKg    float64   `json:"weight_kg" yaml:"weight_kg"`
	Date        time.Time `json:"date" yaml:"date"`
}

// RecordFromWorkout snapshots a workout into the PR row shape for its key.
func RecordFromWorkout(w *Workout) *PersonalRecord {
	pr := &PersonalRecord{
		Key:         w.PRKey(),
		DurationMin: w.DurationMin,
		Date:        w.Date,
	}
	if w.Strength != nil {
		pr.Reps = w.Strength.Reps
		pr.WeightKg = w.Strength.ExternalWeightKg
	}
	return pr
}
