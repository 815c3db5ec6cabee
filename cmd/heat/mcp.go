// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your training data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "heat": {
        "command": "heat",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout     Log a strength or cardio workout
  list_workouts   List recent workouts
  delete_workout  Delete a workout by ID
  list_records    List personal records
  list_goals      List goals
  create_goal     Create a new goal
  get_profile     Get the user profile
  get_quote       Get a motivational quote

AVAILABLE RESOURCES:

  heat://recent    Recent workouts
  heat://records   Personal records
  heat://summary   Profile, streak, weekly totals and active goals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(workouts, goals, users)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
