// ABOUTME: Tests for PR comparison rules and lineage recalculation.
package service

import (
	"testing"
	"time"

	"github.com/harperreed/heat/internal/models"
)

func TestIsNewPRNilRecordAlwaysLoses(t *testing.T) {
	w := benchPress(day(2026, time.August, 1), 60, 8)
	if !IsNewPR(w, nil) {
		t.Error("any workout should beat a missing record")
	}
}

func TestIsNewPRStrengthWeightFirstThenReps(t *testing.T) {
	current := &models.PersonalRecord{Key: "Bench Press", WeightKg: 80, Reps: 5}

	cases := []struct {
		name   string
		weight float64
		reps   int
		want   bool
	}{
		{"heavier wins", 85, 3, true},
		{"lighter loses", 75, 12, false},
		{"same weight more reps wins", 80, 6, true},
		{"same weight fewer reps loses", 80, 4, false},
		{"exact tie loses", 80, 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := benchPress(day(2026, time.August, 1), tc.weight, tc.reps)
			if got := IsNewPR(w, current); got != tc.want {
				t.Errorf("IsNewPR(%vkg x%d) = %v, want %v", tc.weight, tc.reps, got, tc.want)
			}
		})
	}
}

func TestIsNewPRCardioComparesDuration(t *testing.T) {
	current := &models.PersonalRecord{Key: "Running", DurationMin: 40}

	if !IsNewPR(run(day(2026, time.August, 1), 45), current) {
		t.Error("longer run should take the record")
	}
	if IsNewPR(run(day(2026, time.August, 1), 40), current) {
		t.Error("equal duration should not take the record")
	}
}

func TestMatchesCurrentPR(t *testing.T) {
	current := &models.PersonalRecord{Key: "Bench Press", WeightKg: 80, Reps: 5}

	if !MatchesCurrentPR(benchPress(day(2026, time.August, 1), 80, 5), current) {
		t.Error("matching values should match the record")
	}
	if MatchesCurrentPR(benchPress(day(2026, time.August, 1), 80, 6), current) {
		t.Error("different reps should not match the record")
	}
	if MatchesCurrentPR(benchPress(day(2026, time.August, 1), 80, 5), nil) {
		t.Error("nothing matches a missing record")
	}
}

func TestRecalculatePRRebuildsFromSurvivors(t *testing.T) {
	s := setupServices(t)

	for _, w := range []*models.Workout{
		benchPress(day(2026, time.August, 1), 60, 8),
		benchPress(day(2026, time.August, 2), 80, 5),
		benchPress(day(2026, time.August, 3), 70, 10),
	} {
		if err := s.store.InsertWorkout(w); err != nil {
			t.Fatalf("failed to insert workout: %v", err)
		}
	}

	rec, err := RecalculatePR(s.store, "Bench Press", "Bench Press", models.Strength)
	if err != nil {
		t.Fatalf("RecalculatePR failed: %v", err)
	}
	if rec == nil || rec.WeightKg != 80 || rec.Reps != 5 {
		t.Errorf("recalculated record = %+v, want 80kg x5", rec)
	}

	stored, err := s.store.GetRecord("Bench Press")
	if err != nil {
		t.Fatalf("failed to read record: %v", err)
	}
	if stored == nil || stored.WeightKg != 80 {
		t.Errorf("stored record = %+v, want 80kg", stored)
	}
}

func TestRecalculatePREmptyLineageClearsRecord(t *testing.T) {
	s := setupServices(t)

	if err := s.store.UpsertRecord(&models.PersonalRecord{
		Key: "Bench Press", WeightKg: 80, Reps: 5, Date: day(2026, time.August, 1),
	}); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	rec, err := RecalculatePR(s.store, "Bench Press", "Bench Press", models.Strength)
	if err != nil {
		t.Fatalf("RecalculatePR failed: %v", err)
	}
	if rec != nil {
		t.Errorf("record = %+v, want nil for empty lineage", rec)
	}

	stored, err := s.store.GetRecord("Bench Press")
	if err != nil {
		t.Fatalf("failed to read record: %v", err)
	}
	if stored != nil {
		t.Errorf("stored record = %+v, want removed", stored)
	}
}
