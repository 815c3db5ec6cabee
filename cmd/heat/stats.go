// ABOUTME: CLI commands for the weekly summary and motivational quotes.
// ABOUTME: Quote tone hardens as the streak shrinks.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly training summary",
	Long: `Show the last seven days of training: session count, calories,
strength volume, the current streak and any goals still in play.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		week := workouts.WeeklyWorkouts()

		fmt.Println("This week:")
		fmt.Printf("  workouts  %d\n", len(week))
		fmt.Printf("  calories  %.0f kcal\n", service.TotalCalories(week))
		fmt.Printf("  volume    %.0f kg\n", service.TotalTrainingVolume(week))
		fmt.Printf("  streak    %d day(s)\n", users.Streak())

		if active := goals.ActiveGoals(); len(active) > 0 {
			fmt.Println("\nActive goals:")
			for _, g := range active {
				fmt.Printf("  %s %.1f / %.1f\n", padRight(g.Title, 24), g.CurrentValue, g.TargetValue)
			}
		}

		fmt.Println()
		color.Cyan("%s", workouts.Quote(users.Streak()))
		return nil
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a motivational quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		color.Cyan("%s", workouts.Quote(users.Streak()))
		return nil
	},
}

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the activity catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := workouts.Activities()
		if len(catalog) == 0 {
			fmt.Println("No activities seeded. Run 'heat seed' first.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, a := range catalog {
			extra := fmt.Sprintf("MET %.1f", a.MetValue)
			if a.Kind == models.Strength {
				extra += fmt.Sprintf(", BW factor %.2f", a.BodyWeightFactor)
			}
			fmt.Printf("%s %s %s\n",
				padRight(a.Name, 24),
				padRight(string(a.Kind), 10),
				faint.Sprint(extra))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(activitiesCmd)
}
