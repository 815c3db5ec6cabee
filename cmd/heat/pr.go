// ABOUTME: CLI commands for viewing and deleting personal records.
// ABOUTME: Records are derived from history; manual deletes are advisory only.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/models"
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Personal records",
}

var prListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List personal records",
	Long: `List the current personal record for every exercise lineage.

Bodyweight exercises keep two lineages: "(reps)" for unloaded sets and
"(loaded)" for weighted ones. Cardio records track the longest session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records := workouts.Records()
		if len(records) == 0 {
			fmt.Println("No personal records yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			fmt.Printf("%s %s %s\n",
				padRight(r.Key, 28),
				padRight(recordDetails(r), 16),
				faint.Sprint(r.Date.Format(models.DateLayout)))
		}
		return nil
	},
}

var prDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a personal record",
	Long: `Delete one personal record by its key.

History is untouched, so the record returns as soon as a better session
for the same lineage is logged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := workouts.DeleteRecord(args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted record %s", args[0])
		return nil
	},
}

func recordDetails(r *models.PersonalRecord) string {
	switch {
	case r.WeightKg > 0:
		return fmt.Sprintf("%.1fkg x%d", r.WeightKg, r.Reps)
	case r.Reps > 0:
		return fmt.Sprintf("%d reps", r.Reps)
	}
	return fmt.Sprintf("%d min", r.DurationMin)
}

func init() {
	prCmd.AddCommand(prListCmd)
	prCmd.AddCommand(prDeleteCmd)
	rootCmd.AddCommand(prCmd)
}
