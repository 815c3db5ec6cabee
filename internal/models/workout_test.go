// ABOUTME: Tests for the Workout variant model.
// ABOUTME: Covers PR key derivation, training volume and distance estimates.
package models

import (
	"testing"
	"time"
)

var testDay = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func TestPRKeyDerivation(t *testing.T) {
	tests := []struct {
		name             string
		exercise         string
		kind             Kind
		bodyWeightFactor float64
		externalWeightKg float64
		want             string
	}{
		{"bodyweight unloaded", "Push-up", Strength, 1, 0, "Push-up (reps)"},
		{"bodyweight loaded", "Push-up", Strength, 1, 20, "Push-up (loaded)"},
		{"pure external weight", "Bench Press", Strength, 0, 50, "Bench Press"},
		{"cardio", "Running", Cardio, 0, 0, "Running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *Workout
			if tt.kind == Strength {
				w = NewStrengthWorkout(tt.exercise, testDay, 30, 100, 3, 10, 80, tt.externalWeightKg, tt.bodyWeightFactor)
			} else {
				w = NewCardioWorkout(tt.exercise, testDay, 30, 100)
			}
			if got := w.PRKey(); got != tt.want {
				t.Errorf("PRKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrainingVolume(t *testing.T) {
	// (80kg body * 0.5 factor + 20kg external) * 3 sets * 10 reps = 1800kg
	w := NewStrengthWorkout("Pull-up", testDay, 20, 150, 3, 10, 80, 20, 0.5)
	if w.Strength.TrainingVolumeKg != 1800 {
		t.Errorf("TrainingVolumeKg = %.1f, want 1800", w.Strength.TrainingVolumeKg)
	}
}

func TestEstimateDistance(t *testing.T) {
	if got := EstimateDistanceKm("Running", 60); got != 60*0.133 {
		t.Errorf("running distance = %.2f", got)
	}
	if got := EstimateDistanceKm("Jumping Rope", 30); got != 0 {
		t.Errorf("stationary distance = %.2f, want 0", got)
	}
	w := NewCardioWorkout("Cycling", testDay, 40, 300)
	if w.Cardio.DistanceKm != 40*0.25 {
		t.Errorf("cycling distance = %.2f", w.Cardio.DistanceKm)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("strength"); err != nil || k != Strength {
		t.Errorf("ParseKind(strength) = %v, %v", k, err)
	}
	if _, err := ParseKind("yoga"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
