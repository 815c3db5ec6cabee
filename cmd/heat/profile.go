// ABOUTME: CLI commands for the user profile and body-metric history.
// ABOUTME: The newest body metric always mirrors the active profile.
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
	profileName   string
	profileAge    int
	profileHeight float64
	profileWeight float64
	profileSex    string
	metricDate    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the profile",
	Long: `Create or replace the user profile. BMI and BMR are derived from the
stats; an existing streak survives re-registration. A changed weight is
pushed through any body-weight goals.

EXAMPLES:

  heat profile set --name Alex --age 30 --height 180 --weight 80 --sex M`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileName == "" || profileAge <= 0 || profileHeight <= 0 || profileWeight <= 0 {
			return fmt.Errorf("profile needs --name, --age, --height and --weight")
		}
		if profileSex != "M" && profileSex != "F" {
			return fmt.Errorf("--sex must be M or F")
		}

		if err := users.SaveProfile(profileName, profileAge, profileHeight, profileWeight, profileSex); err != nil {
			return err
		}

		p := users.Profile()
		color.Green("✓ Profile saved")
		fmt.Printf("  BMI %.1f, BMR %.0f kcal/day\n", p.BMI, p.BMR)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := users.Profile()
		if p == nil {
			fmt.Println("No profile yet. Run 'heat profile set' first.")
			return nil
		}

		fmt.Printf("%s, %d\n", p.Name, p.Age)
		fmt.Printf("  height  %.1f cm\n", p.HeightCm)
		fmt.Printf("  weight  %.1f kg\n", p.WeightKg)
		fmt.Printf("  BMI     %.1f\n", p.BMI)
		fmt.Printf("  BMR     %.0f kcal/day\n", p.BMR)
		fmt.Printf("  streak  %d day(s)\n", p.CurrentStreak)
		if p.LastWorkoutDate != nil {
			fmt.Printf("  last workout %s\n", p.LastWorkoutDate.Format(models.DateLayout))
		}
		return nil
	},
}

var metricCmd = &cobra.Command{
	Use:   "metric",
	Short: "Body-metric history",
}

var metricAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a body-metric snapshot",
	Long: `Record a dated snapshot of age, height and weight. When the snapshot
is the newest entry it becomes the active profile stats, and a changed
weight is pushed through any body-weight goals.

EXAMPLES:

  heat metric add --weight 78.5
  heat metric add --weight 78.5 --date 2026-08-15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := users.Profile()
		if p == nil {
			return fmt.Errorf("no profile yet; run 'heat profile set' first")
		}

		date := time.Now().Truncate(24 * time.Hour)
		if metricDate != "" {
			var err error
			date, err = time.Parse(models.DateLayout, metricDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", metricDate)
			}
		}

		age, height, weight := p.Age, p.HeightCm, p.WeightKg
		if cmd.Flags().Changed("age") {
			age = profileAge
		}
		if cmd.Flags().Changed("height") {
			height = profileHeight
		}
		if cmd.Flags().Changed("weight") {
			weight = profileWeight
		}

		bm := models.NewBodyMetric(age, height, weight, date)
		if err := users.AddBodyMetric(bm); err != nil {
			return err
		}

		color.Green("✓ Recorded body metric")
		fmt.Printf("  %s %.1f kg, BMI %.1f\n",
			color.New(color.Faint).Sprintf("#%d", bm.ID), bm.WeightKg, bm.BMI)
		return nil
	},
}

var metricListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List body-metric history",
	RunE: func(cmd *cobra.Command, args []string) error {
		history := users.History()
		if len(history) == 0 {
			fmt.Println("No body metrics recorded.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, bm := range history {
			fmt.Printf("%s %s %5.1f kg  BMI %4.1f\n",
				faint.Sprintf("#%-4d", bm.ID),
				faint.Sprint(bm.Date.Format(models.DateLayout)),
				bm.WeightKg, bm.BMI)
		}
		return nil
	},
}

var metricEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a body-metric snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bm, err := findMetric(args[0])
		if err != nil {
			return err
		}

		updated := *bm
		if cmd.Flags().Changed("age") {
			updated.Age = profileAge
		}
		if cmd.Flags().Changed("height") {
			updated.HeightCm = profileHeight
		}
		if cmd.Flags().Changed("weight") {
			updated.WeightKg = profileWeight
		}

		if err := users.UpdateBodyMetric(&updated); err != nil {
			return err
		}
		color.Green("✓ Updated body metric #%d", updated.ID)
		return nil
	},
}

var metricDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a body-metric snapshot",
	Long: `Delete a body-metric snapshot. Deleting the newest entry reverts the
profile stats to the next most recent one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bm, err := findMetric(args[0])
		if err != nil {
			return err
		}
		if err := users.DeleteBodyMetric(bm.ID); err != nil {
			return err
		}
		color.Yellow("✗ Deleted body metric #%d", bm.ID)
		return nil
	},
}

func findMetric(arg string) (*models.BodyMetric, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid metric id: %s", arg)
	}
	for _, bm := range users.History() {
		if bm.ID == id {
			return bm, nil
		}
	}
	return nil, fmt.Errorf("body metric not found: %d", id)
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg")
	profileSetCmd.Flags().StringVar(&profileSex, "sex", "M", "sex (M or F)")

	for _, c := range []*cobra.Command{metricAddCmd, metricEditCmd} {
		c.Flags().IntVar(&profileAge, "age", 0, "age in years")
		c.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
		c.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg")
	}
	metricAddCmd.Flags().StringVar(&metricDate, "date", "", "date (YYYY-MM-DD), defaults to today")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	metricCmd.AddCommand(metricAddCmd)
	metricCmd.AddCommand(metricListCmd)
	metricCmd.AddCommand(metricEditCmd)
	metricCmd.AddCommand(metricDeleteCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(metricCmd)
}
