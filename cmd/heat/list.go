// ABOUTME: CLI command for listing workouts.
// ABOUTME: Supports week filtering and result limiting.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/service"
)

var (
	listWeek  bool
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List workouts",
	Long: `List recent workouts, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  EXERCISE  DETAILS  DURATION  CALORIES

  The ID is what 'heat edit' and 'heat delete' take.

EXAMPLES:

  heat list             # Last 20 workouts
  heat list -n 50       # Last 50 workouts
  heat list --week      # Only the last seven days, with totals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := workouts.Workouts()
		if listWeek {
			list = workouts.WeeklyWorkouts()
		}
		if len(list) > listLimit {
			list = list[:listLimit]
		}

		if len(list) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range list {
			fmt.Printf("%s %s %s %s %3dmin %6.0f kcal\n",
				faint.Sprintf("#%-4d", w.ID),
				faint.Sprint(w.Date.Format(models.DateLayout)),
				padRight(w.Exercise, 20),
				padRight(workoutDetails(w), 18),
				w.DurationMin,
				w.CaloriesBurned)
		}

		if listWeek {
			fmt.Printf("\nWeek: %d workouts, %.0f kcal, %.0f kg volume\n",
				len(list), service.TotalCalories(list), service.TotalTrainingVolume(list))
		}

		return nil
	},
}

func workoutDetails(w *models.Workout) string {
	switch {
	case w.Strength != nil:
		if w.Strength.ExternalWeightKg > 0 {
			return fmt.Sprintf("%dx%d @%.1fkg", w.Strength.Sets, w.Strength.Reps, w.Strength.ExternalWeightKg)
		}
		return fmt.Sprintf("%dx%d", w.Strength.Sets, w.Strength.Reps)
	case w.Cardio != nil && w.Cardio.DistanceKm > 0:
		return fmt.Sprintf("%.1f km", w.Cardio.DistanceKm)
	}
	return ""
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().BoolVar(&listWeek, "week", false, "only the last seven days")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
