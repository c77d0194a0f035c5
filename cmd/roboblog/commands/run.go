// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/internal/checkpoint"
	"github.com/bartekus/roboblog/internal/workflow"
)

var (
	runDryRun    bool
	runSkipBuild bool
	runConfig    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the complete blog update workflow",
	Long: `Run sequences the full update: fetch commits, generate a post, sync
the Jekyll configuration, process human-written posts, and build the site.
The checkpoint advances only after every executed step has succeeded, so a
failed run safely re-scans the same history next time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(runConfig)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded configuration from %s\n", runConfig)
		if runDryRun {
			fmt.Println("Dry run: no files will be written")
		}

		deps := &workflow.Deps{
			Config:      cfg,
			CommitsPath: "data/commits.json",
			DryRun:      runDryRun,
			SkipBuild:   runSkipBuild,
		}

		steps := []workflow.Step{
			workflow.FetchStep{},
			workflow.GenerateStep{},
			workflow.SyncConfigStep{},
			workflow.HumanPostsStep{},
			workflow.BuildStep{},
		}

		return workflow.Run(cmd.Context(), deps, steps, checkpoint.NewStore(""))
	},
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Test the workflow without writing files")
	runCmd.Flags().BoolVar(&runSkipBuild, "skip-build", false, "Skip the Jekyll build step")
	runCmd.Flags().StringVar(&runConfig, "config", "config.yml", "Path to config file")
}

// GetRunCmd exposes the command to the root command.
func GetRunCmd() *cobra.Command {
	return runCmd
}
