// ABOUTME: CLI command for logging workouts.
// ABOUTME: Derives calories from the activity catalog and the user's weight.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/models"
)

var (
	logKind     string
	logDate     string
	logDuration int
	logSets     int
	logReps     int
	logWeight   float64
)

var logCmd = &cobra.Command{
	Use:     "log <exercise>",
	Aliases: []string{"add"},
	Short:   "Log a workout",
	Long: `Log a strength or cardio workout. Records, goal progress and the
streak are updated together with the workout; either everything lands
or nothing does.

Calories are estimated from the activity catalog (MET value) and your
body weight. Strength volume uses the catalog's bodyweight factor.

EXAMPLES:

  heat log Running --kind cardio --duration 30
  heat log "Bench Press" --kind strength --duration 45 --sets 3 --reps 8 --weight 60
  heat log Push-up --kind strength --duration 15 --sets 3 --reps 20
  heat log Cycling --kind cardio --duration 60 --date 2026-08-15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !users.IsRegistered() {
			return fmt.Errorf("no profile yet; run 'heat profile set' first")
		}

		kind, err := models.ParseKind(logKind)
		if err != nil {
			return err
		}
		if logDuration <= 0 {
			return fmt.Errorf("duration must be positive")
		}

		date := time.Now().Truncate(24 * time.Hour)
		if logDate != "" {
			date, err = time.Parse(models.DateLayout, logDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", logDate)
			}
		}

		exercise := args[0]
		met, factor := 5.0, 0.0
		if a := workouts.LookupActivity(exercise); a != nil {
			met, factor = a.MetValue, a.BodyWeightFactor
		}
		calories := models.CalculateCaloriesBurned(met, users.WeightKg(), logDuration)

		var w *models.Workout
		switch kind {
		case models.Strength:
			if logSets <= 0 || logReps <= 0 {
				return fmt.Errorf("strength workouts need --sets and --reps")
			}
			w = models.NewStrengthWorkout(exercise, date, logDuration, calories,
				logSets, logReps, users.WeightKg(), logWeight, factor)
		case models.Cardio:
			w = models.NewCardioWorkout(exercise, date, logDuration, calories)
		}

		if err := workouts.LogWorkout(w); err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s", exercise)
		fmt.Printf("  %s %s %dmin %.0f kcal\n",
			color.New(color.Faint).Sprintf("#%d", w.ID),
			date.Format(models.DateLayout), w.DurationMin, w.CaloriesBurned)

		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logKind, "kind", "k", "cardio", "workout kind (strength or cardio)")
	logCmd.Flags().StringVar(&logDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	logCmd.Flags().IntVarP(&logDuration, "duration", "d", 0, "duration in minutes")
	logCmd.Flags().IntVar(&logSets, "sets", 0, "sets (strength only)")
	logCmd.Flags().IntVar(&logReps, "reps", 0, "reps per set (strength only)")
	logCmd.Flags().Float64VarP(&logWeight, "weight", "w", 0, "external load in kg (strength only)")
	rootCmd.AddCommand(logCmd)
}
