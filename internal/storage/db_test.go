// ABOUTME: Tests for the store gateway transaction semantics.
// ABOUTME: Covers rollback isolation and idempotent commit/rollback.
package storage

import (
	"testing"

	"github.com/harperreed/heat/internal/models"
)

func TestRollbackDiscardsWrites(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	w := models.NewCardioWorkout("Running", day(2026, 3, 1), 30, 250)
	if err := d.InsertWorkout(w); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	if err := d.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	workouts, err := d.ListWorkouts()
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("expected empty history after rollback, got %d rows", len(workouts))
	}
}

func TestCommitPersistsWrites(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	w := models.NewCardioWorkout("Running", day(2026, 3, 1), 30, 250)
	if err := d.InsertWorkout(w); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	workouts, err := d.ListWorkouts()
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Errorf("expected 1 workout after commit, got %d", len(workouts))
	}
}

func TestCommitRollbackNoOpWhenClosed(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Commit(); err != nil {
		t.Errorf("Commit with no transaction should be a no-op, got %v", err)
	}
	if err := d.Rollback(); err != nil {
		t.Errorf("Rollback with no transaction should be a no-op, got %v", err)
	}
}

func TestNestedBeginRejected(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := d.Begin(); err == nil {
		t.Error("nested Begin should fail")
	}
	if err := d.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
}

func TestTransactionSeesOwnWrites(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	w := models.NewStrengthWorkout("Bench Press", day(2026, 3, 1), 30, 200, 3, 8, 80, 60, 0)
	if err := d.InsertWorkout(w); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	// Aggregates inside the transaction must see the just-written row.
	max, err := d.MaxWeightLifted("Bench Press", day(2026, 1, 1))
	if err != nil {
		t.Fatalf("MaxWeightLifted failed: %v", err)
	}
	if max != 60 {
		t.Errorf("MaxWeightLifted inside tx = %.1f, want 60", max)
	}
	if err := d.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
}
