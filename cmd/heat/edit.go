// ABOUTME: CLI commands for editing and deleting workouts.
// ABOUTME: Both recompute records, goal progress and the streak.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/models"
)

var (
	editDate     string
	editDuration int
	editSets     int
	editReps     int
	editWeight   float64
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a workout",
	Long: `Edit a workout's date, duration or strength details. Only the flags
you pass change; everything else keeps its current value.

Records are reconciled afterwards: if the workout held a record and no
longer earns it, the record falls back to the best surviving session.

EXAMPLES:

  heat edit 12 --duration 50
  heat edit 12 --sets 4 --reps 6 --weight 65
  heat edit 12 --date 2026-08-10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		original, err := findWorkout(args[0])
		if err != nil {
			return err
		}

		updated := *original
		if original.Strength != nil {
			details := *original.Strength
			updated.Strength = &details
		}
		if original.Cardio != nil {
			details := *original.Cardio
			updated.Cardio = &details
		}

		if cmd.Flags().Changed("date") {
			d, err := time.Parse(models.DateLayout, editDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", editDate)
			}
			updated.Date = d
		}
		if cmd.Flags().Changed("duration") {
			if editDuration <= 0 {
				return fmt.Errorf("duration must be positive")
			}
			updated.DurationMin = editDuration
			if updated.Cardio != nil {
				updated.Cardio.DistanceKm = models.EstimateDistanceKm(updated.Exercise, editDuration)
			}
		}
		if updated.Strength != nil {
			if cmd.Flags().Changed("sets") {
				updated.Strength.Sets = editSets
			}
			if cmd.Flags().Changed("reps") {
				updated.Strength.Reps = editReps
			}
			if cmd.Flags().Changed("weight") {
				updated.Strength.ExternalWeightKg = editWeight
			}
			s := updated.Strength
			s.TrainingVolumeKg = (users.WeightKg()*s.BodyWeightFactor + s.ExternalWeightKg) *
				float64(s.Sets) * float64(s.Reps)
		}

		if err := workouts.UpdateWorkout(original, &updated); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		color.Green("✓ Updated %s", updated.Exercise)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID.

If the workout held a personal record, the record is rebuilt from the
remaining sessions in the same lineage. Goal progress and the streak
are recomputed too.

CAUTION:

  This permanently deletes the workout. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}

		if err := workouts.DeleteWorkout(w); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %s (%s)", w.Exercise, w.Date.Format(models.DateLayout))
		return nil
	},
}

func findWorkout(arg string) (*models.Workout, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid workout id: %s", arg)
	}
	for _, w := range workouts.Workouts() {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("workout not found: %d", id)
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "new date (YYYY-MM-DD)")
	editCmd.Flags().IntVarP(&editDuration, "duration", "d", 0, "new duration in minutes")
	editCmd.Flags().IntVar(&editSets, "sets", 0, "new set count")
	editCmd.Flags().IntVar(&editReps, "reps", 0, "new reps per set")
	editCmd.Flags().Float64VarP(&editWeight, "weight", "w", 0, "new external load in kg")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}
