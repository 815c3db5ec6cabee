// ABOUTME: Root Cobra command for heat CLI.
// ABOUTME: Opens storage and wires the service graph via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/config"
	"github.com/harperreed/heat/internal/service"
	"github.com/harperreed/heat/internal/storage"
)

var (
	cfg      *config.Config
	store    *storage.DB
	users    *service.UserService
	goals    *service.GoalService
	workouts *service.WorkoutService
)

var rootCmd = &cobra.Command{
	Use:   "heat",
	Short: "Personal fitness tracker",
	Long: `Heat is a CLI tool for tracking workouts, personal records, goals and
training streaks.

WHAT IT TRACKS:

  Workouts   strength (sets, reps, load) and cardio (duration, distance)
  Records    best performance per exercise lineage, kept in sync with history
  Goals      reps, duration, weight lifted, frequency, weight loss/gain
  Profile    body stats with derived BMI/BMR plus a body-metric history
  Streak     consecutive training days, recomputed from history

QUICK START:

  $ heat profile set --name Alex --age 30 --height 180 --weight 80 --sex M
  $ heat log "Bench Press" --kind strength --duration 45 --sets 3 --reps 8 --weight 60
  $ heat log Running --kind cardio --duration 30
  $ heat list                       # Recent workouts
  $ heat pr list                    # Personal records
  $ heat goal add "Run an hour" --type duration --exercise Running --target 60
  $ heat stats                      # Weekly summary and streak

MCP INTEGRATION:

  Run 'heat mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "heat": { "command": "heat", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/heat/heat.db.
  Override the directory via the config file ('heat config' shows the path).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		store, err = cfg.OpenStorage()
		if err != nil {
			return err
		}

		users, err = service.NewUserService(store)
		if err != nil {
			return err
		}
		goals, err = service.NewGoalService(store, users)
		if err != nil {
			return err
		}
		users.SetGoalRefresher(goals)
		workouts, err = service.NewWorkoutService(store, goals, users)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
