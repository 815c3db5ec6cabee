// ABOUTME: Workout model as a tagged variant with Strength and Cardio payloads.
// ABOUTME: Includes PR key derivation, training volume and distance estimation.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used everywhere dates are persisted.
const DateLayout = "2006-01-02"

// Kind discriminates the workout variant.
type Kind string

const (
	Strength Kind = "Strength"
	Cardio   Kind = "Cardio"
)

// ParseKind converts a string into a Kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "strength":
		return Strength, nil
	case "cardio":
		return Cardio, nil
	}
	return "", fmt.Errorf("unknown workout kind: %q", s)
}

// StrengthDetails holds the fields specific to strength workouts.
type StrengthDetails struct {
	Sets             int     `json:"sets" yaml:"sets"`
	Reps             int     `json:"reps" yaml:"reps"`
	ExternalWeightKg float64 `json:"external_weight_kg" yaml:"external_weight_kg"`
	BodyWeightFactor float64 `json:"body_weight_factor" yaml:"body_weight_factor"`
	TrainingVolumeKg float64 `json:"training_volume_kg" yaml:"training_volume_kg"`
}

// CardioDetails holds the fields specific to cardio workouts.
type CardioDetails struct {
	DistanceKm float64 `json:"distance_km" yaml:"distance_km"`
}

// Workout is a single exercise session. Exactly one of Strength or Cardio is
// set, matching Kind.
type Workout struct {
	ID             int64            `json:"id" yaml:"id"`
	Exercise       string           `json:"exercise" yaml:"exercise"`
	Kind           Kind             `json:"kind" yaml:"kind"`
	Date           time.Time        `json:"date" yaml:"date"`
	DurationMin    int              `json:"duration_minutes" yaml:"duration_minutes"`
	CaloriesBurned float64          `json:"calories_burned" yaml:"calories_burned"`
	Strength       *StrengthDetails `json:"strength,omitempty" yaml:"strength,omitempty"`
	Cardio         *CardioDetails   `json:"cardio,omitempty" yaml:"cardio,omitempty"`
}

// NewStrengthWorkout builds a strength workout, deriving the training volume
// from the lifter's body weight, the activity's bodyweight factor and the
// external load.
func NewStrengthWorkout(exercise string, date time.Time, durationMin int, calories float64,
	sets, reps int, bodyWeightKg, externalWeightKg, bodyWeightFactor float64) *Workout {
	bodyWeightUsed := bodyWeightKg * bodyWeightFactor
	return &Workout{
		Exercise:       exercise,
		Kind:           Strength,
		Date:           date,
		DurationMin:    durationMin,
		CaloriesBurned: calories,
		Strength: &StrengthDetails{
			Sets:             sets,
			Reps:             reps,
			ExternalWeightKg: externalWeightKg,
			BodyWeightFactor: bodyWeightFactor,
			TrainingVolumeKg: (bodyWeightUsed + externalWeightKg) * float64(sets) * float64(reps),
		},
	}
}

// NewCardioWorkout builds a cardio workout with a distance estimated from the
// activity name and duration.
func NewCardioWorkout(exercise string, date time.Time, durationMin int, calories float64) *Workout {
	return &Workout{
		Exercise:       exercise,
		Kind:           Cardio,
		Date:           date,
		DurationMin:    durationMin,
		CaloriesBurned: calories,
		Cardio: &CardioDetails{
			DistanceKm: EstimateDistanceKm(exercise, durationMin),
		},
	}
}

// PRKey derives the personal-record key for this workout. Bodyweight strength
// exercises split into a "(loaded)" lineage when external weight is added and
// a "(reps)" lineage when performed unloaded; cardio and pure external-weight
// strength work keep the bare exercise name.
func (w *Workout) PRKey() string {
	if w.Kind == Strength && w.Strength != nil {
		switch {
		case w.Strength.BodyWeightFactor != 0 && w.Strength.ExternalWeightKg > 0:
			return w.Exercise + " (loaded)"
		case w.Strength.BodyWeightFactor != 0 && w.Strength.ExternalWeightKg == 0:
			return w.Exercise + " (reps)"
		}
	}
	return w.Exercise
}

// EstimateDistanceKm approximates the distance covered by a cardio activity
// from typical paces. Stationary activities return 0.
func EstimateDistanceKm(exercise string, durationMin int) float64 {
	name := strings.ToLower(exercise)
	mins := float64(durationMin)

	switch {
	case strings.Contains(name, "run"):
		return mins * 0.133 // ~8 km/h
	case strings.Contains(name, "cycl"), strings.Contains(name, "bike"):
		return mins * 0.25 // ~15 km/h
	case strings.Contains(name, "walk"):
		return mins * 0.083 // ~5 km/h
	case strings.Contains(name, "swim"):
		return mins * 0.033 // ~2 km/h
	case strings.Contains(name, "dancing"):
		return mins * 0.05
	case strings.Contains(name, "boxing"), strings.Contains(name, "taekwondo"):
		return mins * 0.02
	case strings.Contains(name, "tennis"), strings.Contains(name, "basketball"),
		strings.Contains(name, "volleyball"), strings.Contains(name, "football"),
		strings.Contains(name, "badminton"):
		return mins * 0.1
	}
	return 0
}
