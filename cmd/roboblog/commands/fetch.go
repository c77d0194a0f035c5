// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/internal/checkpoint"
	"github.com/bartekus/roboblog/internal/commits"
	"github.com/bartekus/roboblog/internal/workflow"
)

var (
	fetchDryRun bool
	fetchConfig string
	fetchOutput string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch GitHub commits since the last run",
	Long: `Fetch paginates the GitHub activity feed for the configured user,
filters and deduplicates push commits since the last checkpoint, enriches
them with per-commit detail, and writes the grouped result to the output
file. The checkpoint advances only after the output is fully written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(fetchConfig)
		if err != nil {
			return err
		}

		store := checkpoint.NewStore("")
		since := workflow.ResolveSince(store, cfg.Automation.LookbackDays, time.Now().UTC())
		fmt.Printf("  Fetching commits since: %s\n", since.Format(time.RFC3339))

		result, err := workflow.Fetch(cmd.Context(), cfg, since)
		if err != nil {
			return err
		}

		if fetchDryRun {
			fmt.Println("\nDry run: no files will be written. Preview of output:")
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if err := commits.Write(fetchOutput, result); err != nil {
			return fmt.Errorf("writing fetch output: %w", err)
		}
		fmt.Printf("Written to %s\n", fetchOutput)

		if err := store.Write(time.Now().UTC()); err != nil {
			return fmt.Errorf("updating checkpoint: %w", err)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "Preview commits without writing the output file")
	fetchCmd.Flags().StringVar(&fetchConfig, "config", "config.yml", "Path to config file")
	fetchCmd.Flags().StringVar(&fetchOutput, "output", "data/commits.json", "Output file path")
}

// GetFetchCmd exposes the command to the root command.
func GetFetchCmd() *cobra.Command {
	return fetchCmd
}
