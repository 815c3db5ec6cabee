// ABOUTME: Activity and Quote reference-data models.
// ABOUTME: Seeded from CSV at first run, read-only afterwards.
package models

// Activity describes an exercise in the catalog: its MET value drives calorie
// estimates, its bodyweight factor drives strength volume and PR lineage.
type Activity struct {
	ID               int64
	Name             string
	Kind             Kind
	Category         string
	MetValue         float64
	BodyWeightFactor float64
}

// Quote is one motivational line, bucketed by harshness level.
type Quote struct {
	Level string
	Text  string
}

// Motivation levels, picked by streak length.
const (
	QuoteHarsh    = "harsh"
	QuoteFirm     = "firm"
	QuoteStandard = "standard"
)

// MotivationLevel maps a streak to the tone of quote the user has earned.
func MotivationLevel(streak int) string {
	switch {
	case streak < 3:
		return QuoteHarsh
	case streak < 7:
		return QuoteFirm
	default:
		return QuoteStandard
	}
}
