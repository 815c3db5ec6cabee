// ABOUTME: CLI commands for goal management.
// ABOUTME: Creation is validated against current data; edits rederive status.
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
	goalExercise string
	goalType     string
	goalStart    string
	goalEnd      string
	goalTarget   float64
	goalAll      bool
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Training and body-weight goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a goal",
	Long: `Create a goal. Types:

  reps           best single-workout rep count (strength only)
  duration       total minutes for an exercise
  weight lifted  max external load (strength only)
  frequency      number of sessions
  weight loss    body weight at or below target
  weight gain    body weight at or above target

A goal whose target is already met by current data is rejected; set a
harder target instead.

EXAMPLES:

  heat goal add "Run an hour" --type duration --exercise Running --target 60
  heat goal add "30 push-ups" --type reps --exercise Push-up --target 30
  heat goal add "Cut to 75" --type "weight loss" --target 75 --end 2026-12-31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goalKind, err := models.ParseGoalType(goalType)
		if err != nil {
			return err
		}

		start := time.Now().Truncate(24 * time.Hour)
		if goalStart != "" {
			start, err = time.Parse(models.DateLayout, goalStart)
			if err != nil {
				return fmt.Errorf("invalid start date: %s (use YYYY-MM-DD)", goalStart)
			}
		}
		var end *time.Time
		if goalEnd != "" {
			e, err := time.Parse(models.DateLayout, goalEnd)
			if err != nil {
				return fmt.Errorf("invalid end date: %s (use YYYY-MM-DD)", goalEnd)
			}
			end = &e
		}

		g := models.NewGoal(args[0], goalExercise, goalKind, start, end, 0, goalTarget)
		if err := goals.CreateGoal(g); err != nil {
			return err
		}

		color.Green("✓ Created goal %q", g.Title)
		fmt.Printf("  %s %s, target %.1f\n",
			color.New(color.Faint).Sprintf("#%d", g.ID), g.Type, g.TargetValue)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := goals.ActiveGoals()
		if goalAll {
			list = goals.Goals()
		}
		if len(list) == 0 {
			fmt.Println("No goals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range list {
			window := g.StartDate.Format(models.DateLayout) + " -"
			if g.EndDate != nil {
				window += " " + g.EndDate.Format(models.DateLayout)
			}
			fmt.Printf("%s %s %s %6.1f / %-6.1f %s %s\n",
				faint.Sprintf("#%-3d", g.ID),
				padRight(g.Title, 24),
				padRight(string(g.Type), 14),
				g.CurrentValue, g.TargetValue,
				statusColor(g.Status),
				faint.Sprint(window))
		}
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a goal's target or end date",
	Long: `Update a goal. The status is rederived after the edit: a goal whose
target is now met completes, one whose new end date has passed expires,
anything else goes back to active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := findGoal(args[0])
		if err != nil {
			return err
		}

		updated := *g
		if cmd.Flags().Changed("target") {
			updated.TargetValue = goalTarget
		}
		if cmd.Flags().Changed("end") {
			e, err := time.Parse(models.DateLayout, goalEnd)
			if err != nil {
				return fmt.Errorf("invalid end date: %s (use YYYY-MM-DD)", goalEnd)
			}
			updated.EndDate = &e
		}

		if err := goals.UpdateGoal(g, &updated); err != nil {
			return err
		}
		color.Green("✓ Updated goal %q (%s)", g.Title, g.Status)
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := findGoal(args[0])
		if err != nil {
			return err
		}
		if err := goals.DeleteGoal(g.ID); err != nil {
			return err
		}
		color.Yellow("✗ Deleted goal %q", g.Title)
		return nil
	},
}

func findGoal(arg string) (*models.Goal, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid goal id: %s", arg)
	}
	for _, g := range goals.Goals() {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("goal not found: %d", id)
}

func statusColor(s models.GoalStatus) string {
	switch s {
	case models.GoalCompleted:
		return color.GreenString(string(s))
	case models.GoalExpired:
		return color.RedString(string(s))
	}
	return string(s)
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalExercise, "exercise", "e", "", "exercise name (empty for body-weight goals)")
	goalAddCmd.Flags().StringVarP(&goalType, "type", "t", "", "goal type")
	goalAddCmd.Flags().StringVar(&goalStart, "start", "", "start date (YYYY-MM-DD), defaults to today")
	goalAddCmd.Flags().StringVar(&goalEnd, "end", "", "end date (YYYY-MM-DD), open-ended if omitted")
	goalAddCmd.Flags().Float64Var(&goalTarget, "target", 0, "target value")
	goalAddCmd.MarkFlagRequired("type")
	goalAddCmd.MarkFlagRequired("target")

	goalListCmd.Flags().BoolVarP(&goalAll, "all", "a", false, "include completed and expired goals")

	goalUpdateCmd.Flags().Float64Var(&goalTarget, "target", 0, "new target value")
	goalUpdateCmd.Flags().StringVar(&goalEnd, "end", "", "new end date (YYYY-MM-DD)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}
