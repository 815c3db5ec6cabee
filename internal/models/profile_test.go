// ABOUTME: Tests for profile derivation formulas.
// ABOUTME: Covers BMI, BMR by sex, and MET calorie estimates.
package models

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculateBMI(t *testing.T) {
	// 80kg at 180cm -> 80 / 1.8^2
	if got := CalculateBMI(80, 180); !almostEqual(got, 80/(1.8*1.8)) {
		t.Errorf("BMI = %.4f", got)
	}
}

func TestCalculateBMRBySex(t *testing.T) {
	male := CalculateBMR(180, 80, 30, "M")
	want := 88.36 + 13.4*80 + 4.8*180 - 5.7*30
	if !almostEqual(male, want) {
		t.Errorf("male BMR = %.2f, want %.2f", male, want)
	}

	female := CalculateBMR(165, 60, 25, "F")
	wantF := 447.6 + 9.2*60 + 3.1*165 - 4.3*25
	if !almostEqual(female, wantF) {
		t.Errorf("female BMR = %.2f, want %.2f", female, wantF)
	}
}

func TestCalculateCaloriesBurned(t *testing.T) {
	// MET 8, 80kg, 30 min -> 8 * 3.5 * 80 * 30 / 200 = 336
	if got := CalculateCaloriesBurned(8, 80, 30); !almostEqual(got, 336) {
		t.Errorf("calories = %.2f, want 336", got)
	}
}

func TestNewProfileDerivesStats(t *testing.T) {
	p := NewProfile("Sam", 30, 180, 80, "M")
	if !almostEqual(p.BMI, CalculateBMI(80, 180)) {
		t.Error("BMI not derived")
	}
	p.WeightKg = 75
	p.Recalculate()
	if !almostEqual(p.BMI, CalculateBMI(75, 180)) {
		t.Error("Recalculate did not refresh BMI")
	}
}

func TestMotivationLevel(t *testing.T) {
	if MotivationLevel(0) != QuoteHarsh || MotivationLevel(2) != QuoteHarsh {
		t.Error("streak < 3 should be harsh")
	}
	if MotivationLevel(3) != QuoteFirm || MotivationLevel(6) != QuoteFirm {
		t.Error("streak 3-6 should be firm")
	}
	if MotivationLevel(7) != QuoteStandard {
		t.Error("streak >= 7 should be standard")
	}
}
