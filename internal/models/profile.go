// ABOUTME: Profile singleton and BodyMetric history models.
// ABOUTME: BMI/BMR/calorie formulas live here as pure functions.
package models

import (
	"math"
	"time"
)

// Profile is the single user's record. BMI and BMR are always derived from
// the physical stats, never edited directly.
type Profile struct {
	Name            string     `json:"name" yaml:"name"`
	Age             int        `json:"age" yaml:"age"`
	HeightCm        float64    `json:"height_cm" yaml:"height_cm"`
	WeightKg        float64    `json:"weight_kg" yaml:"weight_kg"`
	Sex             string     `json:"sex" yaml:"sex"`
	BMI             float64    `json:"bmi" yaml:"bmi"`
	BMR             float64    `json:"bmr" yaml:"bmr"`
	CurrentStreak   int        `json:"current_streak" yaml:"current_streak"`
	LastWorkoutDate *time.Time `json:"last_workout_date,omitempty" yaml:"last_workout_date,omitempty"`
}

// NewProfile builds a profile with BMI and BMR computed from the stats.
func NewProfile(name string, age int, heightCm, weightKg float64, sex string) *Profile {
	return &Profile{
		Name:     name,
		Age:      age,
		HeightCm: heightCm,
		WeightKg: weightKg,
		Sex:      sex,
		BMI:      CalculateBMI(weightKg, heightCm),
		BMR:      CalculateBMR(heightCm, weightKg, age, sex),
	}
}

// Recalculate refreshes BMI and BMR after any physical stat change.
func (p *Profile) Recalculate() {
	p.BMI = CalculateBMI(p.WeightKg, p.HeightCm)
	p.BMR = CalculateBMR(p.HeightCm, p.WeightKg, p.Age, p.Sex)
}

// BodyMetric is a dated snapshot of physical stats. The newest entry mirrors
// the active profile.
type BodyMetric struct {
	ID       int64     `json:"id" yaml:"id"`
	Age      int       `json:"age" yaml:"age"`
	HeightCm float64   `json:"height_cm" yaml:"height_cm"`
	WeightKg float64   `json:"weight_kg" yaml:"weight_kg"`
	BMI      float64   `json:"bmi" yaml:"bmi"`
	Date     time.Time `json:"date" yaml:"date"`
}

// NewBodyMetric builds a snapshot with BMI derived from the stats.
func NewBodyMetric(age int, heightCm, weightKg float64, date time.Time) *BodyMetric {
	return &BodyMetric{
		Age:      age,
		HeightCm: heightCm,
		WeightKg: weightKg,
		BMI:      CalculateBMI(weightKg, heightCm),
		Date:     date,
	}
}

// CalculateBMI returns weight(kg) / height(m)^2.
func CalculateBMI(weightKg, heightCm float64) float64 {
	return weightKg / math.Pow(heightCm/100.0, 2)
}

// CalculateBMR uses the revised Harris-Benedict equations.
func CalculateBMR(heightCm, weightKg float64, age int, sex string) float64 {
	if sex == "M" || sex == "m" {
		return 88.36 + 13.4*weightKg + 4.8*heightCm - 5.7*float64(age)
	}
	return 447.6 + 9.2*weightKg + 3.1*heightCm - 4.3*float64(age)
}

// CalculateCaloriesBurned applies the standard MET formula.
func CalculateCaloriesBurned(metValue, weightKg float64, durationMin int) float64 {
	return metValue * 3.5 * weightKg * float64(durationMin) / 200.0
}
