// ABOUTME: Personal record comparison and lineage reconciliation.
// ABOUTME: Decides when a workout takes, matches, or vacates a PR slot.
package service

import (
	"fmt"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/storage"
)

// IsNewPR reports whether w beats current. A nil current always loses.
// Strength records compare weight first and break ties on reps; cardio
// records compare duration only.
func IsNewPR(w *models.Workout, current *models.PersonalRecord) bool {
	if current == nil {
		return true
	}
	if w.Kind == models.Cardio {
		return w.DurationMin > current.DurationMin
	}
	weight := w.Strength.ExternalWeightKg
	if weight > current.WeightKg {
		return true
	}
	if weight < current.WeightKg {
		return false
	}
	return w.Strength.Reps > current.Reps
}

// MatchesCurrentPR reports whether w is the workout the record was taken
// from, by value equality. Used before deleting or editing a workout to
// decide whether its lineage needs recomputing.
func MatchesCurrentPR(w *models.Workout, current *models.PersonalRecord) bool {
	if current == nil {
		return false
	}
	if w.Kind == models.Cardio {
		return w.DurationMin == current.DurationMin
	}
	return w.Strength.ExternalWeightKg == current.WeightKg && w.Strength.Reps == current.Reps
}

// RecalculatePR rebuilds the record for one lineage from the surviving
// workouts. The stale record is removed first so a lineage with no
// remaining workouts ends up with no record at all. Returns the new
// record, or nil when the lineage is empty. Must run inside the caller's
// open transaction so it sees pending deletes and updates.
func RecalculatePR(store *storage.DB, exercise, key string, kind models.Kind) (*models.PersonalRecord, error) {
	if err := store.DeleteRecord(key); err != nil {
		return nil, fmt.Errorf("clearing record %q: %w", key, err)
	}

	best, err := store.BestRemaining(exercise, key, kind)
	if err != nil {
		return nil, fmt.Errorf("finding best remaining for %q: %w", key, err)
	}
	if best == nil {
		return nil, nil
	}

	rec := models.RecordFromWorkout(best)
	if err := store.UpsertRecord(rec); err != nil {
		return nil, fmt.Errorf("saving recalculated record %q: %w", key, err)
	}
	return rec, nil
}
