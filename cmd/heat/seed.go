// ABOUTME: CLI command for seeding the activity catalog and quote list.
// ABOUTME: Ships built-in data, overridable via config or flags.
package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/heat/internal/config"
)

//go:embed activities.csv
var defaultActivities []byte

//go:embed quotes.txt
var defaultQuotes []byte

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the activity catalog and quotes",
	Long: `Load the activity catalog (exercise names, MET values, bodyweight
factors) and the motivational quote list into the database.

Built-in data is used unless the config file points at custom files
(activities_csv, quotes_file). Seeding is skipped for tables that
already have rows; pass --force to reseed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		activities := defaultActivities
		if cfg.ActivitiesCSV != "" {
			data, err := os.ReadFile(config.ExpandPath(cfg.ActivitiesCSV))
			if err != nil {
				return fmt.Errorf("failed to read activities file: %w", err)
			}
			activities = data
		}
		quotes := defaultQuotes
		if cfg.QuotesFile != "" {
			data, err := os.ReadFile(config.ExpandPath(cfg.QuotesFile))
			if err != nil {
				return fmt.Errorf("failed to read quotes file: %w", err)
			}
			quotes = data
		}

		if err := seedTable("activities", activities, store.SeedActivities); err != nil {
			return err
		}
		return seedTable("quotes", quotes, store.SeedQuotes)
	},
}

func seedTable(table string, data []byte, seed func(r io.Reader) (int, error)) error {
	empty, err := store.TableEmpty(table)
	if err != nil {
		return err
	}
	if !empty {
		if !seedForce {
			fmt.Printf("%s already seeded, skipping (use --force to reseed)\n", table)
			return nil
		}
		if err := store.ResetTable(table); err != nil {
			return err
		}
	}

	n, err := seed(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", table, err)
	}
	color.Green("✓ Seeded %d %s", n, table)
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "reseed even when tables have rows")
	rootCmd.AddCommand(seedCmd)
}
