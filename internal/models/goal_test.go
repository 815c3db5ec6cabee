// ABOUTME: Tests for Goal enums, rule table and window/matching helpers.
// ABOUTME: Validates comparator direction per goal type.
package models

import (
	"testing"
	"time"
)

func TestParseGoalType(t *testing.T) {
	gt, err := ParseGoalType("Weight Lifted")
	if err != nil || gt != GoalWeightLifted {
		t.Errorf("ParseGoalType = %v, %v", gt, err)
	}
	if _, err := ParseGoalType("stamina"); err == nil {
		t.Error("expected error for unknown goal type")
	}
}

func TestGoalComparators(t *testing.T) {
	tests := []struct {
		typ             GoalType
		current, target float64
		met             bool
	}{
		{GoalWeightLoss, 79, 80, true},
		{GoalWeightLoss, 80, 80, true},
		{GoalWeightLoss, 81, 80, false},
		{GoalWeightGain, 81, 80, true},
		{GoalWeightGain, 79, 80, false},
		{GoalWeightLifted, 100, 100, true},
		{GoalWeightLifted, 99.5, 100, false},
		{GoalFrequency, 12, 10, true},
	}
	for _, tt := range tests {
		g := &Goal{Type: tt.typ, TargetValue: tt.target}
		if got := g.IsMet(tt.current); got != tt.met {
			t.Errorf("%s IsMet(%.1f vs %.1f) = %v, want %v", tt.typ, tt.current, tt.target, got, tt.met)
		}
	}
}

func TestGoalWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	g := &Goal{StartDate: start, EndDate: &end}
	if !g.InWindow(start) || !g.InWindow(end) {
		t.Error("window bounds should be inclusive")
	}
	if g.InWindow(start.AddDate(0, 0, -1)) {
		t.Error("day before start should be outside")
	}
	if g.InWindow(end.AddDate(0, 0, 1)) {
		t.Error("day after end should be outside")
	}

	open := &Goal{StartDate: start}
	if !open.InWindow(end.AddDate(1, 0, 0)) {
		t.Error("open-ended goal should accept any later date")
	}
}

func TestGoalMatchesCaseInsensitive(t *testing.T) {
	g := &Goal{Exercise: "Bench Press"}
	if !g.Matches("bench press") {
		t.Error("matching should ignore case")
	}
	if g.Matches("Bench") {
		t.Error("partial names should not match")
	}
}

func TestBodyWeightGoalClassification(t *testing.T) {
	if !(&Goal{Type: GoalWeightLoss}).IsBodyWeight() {
		t.Error("weight loss should be a body-weight goal")
	}
	if (&Goal{Type: GoalFrequency}).IsBodyWeight() {
		t.Error("frequency should not be a body-weight goal")
	}
}
