// ABOUTME: Goal model, GoalStatus/GoalType enums and the per-type rule table.
// ABOUTME: Each goal type maps to a comparator and an aggregate-value source.
package models

import (
	"fmt"
	"strings"
	"time"
)

// GoalStatus is the goal lifecycle state.
type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalExpired   GoalStatus = "EXPIRED"
)

// ParseGoalStatus converts a stored status string back into a GoalStatus.
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch GoalStatus(strings.ToUpper(s)) {
	case GoalActive, GoalCompleted, GoalExpired:
		return GoalStatus(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("unknown goal status: %q", s)
}

// GoalType is the closed set of goal kinds.
type GoalType string

const (
	GoalWeightLoss   GoalType = "weight loss"
	GoalWeightGain   GoalType = "weight gain"
	GoalReps         GoalType = "reps"
	GoalDuration     GoalType = "duration"
	GoalWeightLifted GoalType = "weight lifted"
	GoalFrequency    GoalType = "frequency"
)

// AllGoalTypes lists every valid goal type.
var AllGoalTypes = []GoalType{
	GoalWeightLoss, GoalWeightGain, GoalReps,
	GoalDuration, GoalWeightLifted, GoalFrequency,
}

// ParseGoalType converts a string into a GoalType, case-insensitively.
func ParseGoalType(s string) (GoalType, error) {
	gt := GoalType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllGoalTypes {
		if gt == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown goal type: %q", s)
}

// Aggregate names the source a goal's current value is derived from.
type Aggregate int

const (
	// AggBodyWeight reads the profile's latest body weight.
	AggBodyWeight Aggregate = iota
	// AggMaxReps is the max single-workout rep count since the start date.
	AggMaxReps
	// AggMaxWeight is the max external weight lifted since the start date.
	AggMaxWeight
	// AggTotalMinutes is the summed duration since the start date.
	AggTotalMinutes
	// AggFrequency is the count of matching workouts since the start date.
	AggFrequency
)

// GoalRule pairs the completion comparator with the current-value source for
// one goal type. The table replaces string comparisons as control flow.
type GoalRule struct {
	// Met reports whether current satisfies target.
	Met func(current, target float64) bool
	// Source is where the current value comes from.
	Source Aggregate
	// StrengthOnly restricts workout-event relevance to strength workouts.
	StrengthOnly bool
}

var atMost = func(current, target float64) bool { return current <= target }
var atLeast = func(current, target float64) bool { return current >= target }

// GoalRules maps every goal type to its evaluation rule.
var GoalRules = map[GoalType]GoalRule{
	GoalWeightLoss:   {Met: atMost, Source: AggBodyWeight},
	GoalWeightGain:   {Met: atLeast, Source: AggBodyWeight},
	GoalReps:         {Met: atLeast, Source: AggMaxReps, StrengthOnly: true},
	GoalWeightLifted: {Met: atLeast, Source: AggMaxWeight, StrengthOnly: true},
	GoalDuration:     {Met: atLeast, Source: AggTotalMinutes},
	GoalFrequency:    {Met: atLeast, Source: AggFrequency},
}

// Goal is a user-defined target over workouts or body weight.
type Goal struct {
	ID           int64      `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Exercise     string     `json:"exercise,omitempty" yaml:"exercise,omitempty"` // empty for body-weight goals
	StartDate    time.Time  `json:"start_date" yaml:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"` // nil = open-ended
	Type         GoalType   `json:"type" yaml:"type"`
	CurrentValue float64    `json:"current_value" yaml:"current_value"`
	TargetValue  float64    `json:"target_value" yaml:"target_value"`
	Status       GoalStatus `json:"status" yaml:"status"`
}

// NewGoal creates an ACTIVE goal.
func NewGoal(title, exercise string, goalType GoalType, start time.Time, end *time.Time,
	currentValue, targetValue float64) *Goal {
	return &Goal{
		Title:        title,
		Exercise:     exercise,
		StartDate:    start,
		EndDate:      end,
		Type:         goalType,
		CurrentValue: currentValue,
		TargetValue:  targetValue,
		Status:       GoalActive,
	}
}

// IsMet reports whether current satisfies target under this goal's comparator.
func (g *Goal) IsMet(current float64) bool {
	return GoalRules[g.Type].Met(current, g.TargetValue)
}

// IsBodyWeight reports whether the goal tracks body weight rather than
// workout history.
func (g *Goal) IsBodyWeight() bool {
	return GoalRules[g.Type].Source == AggBodyWeight
}

// InWindow reports whether a date falls inside [StartDate, EndDate], with a
// nil EndDate treated as open-ended.
func (g *Goal) InWindow(date time.Time) bool {
	if date.Before(g.StartDate) {
		return false
	}
	if g.EndDate != nil && date.After(*g.EndDate) {
		return false
	}
	return true
}

// Matches reports whether a workout's exercise counts toward this goal.
// Matching is case-insensitive exact equality on the exercise name.
func (g *Goal) Matches(exercise string) bool {
	return strings.EqualFold(g.Exercise, exercise)
}
