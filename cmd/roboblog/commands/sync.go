// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/internal/jekyll"
	"github.com/bartekus/roboblog/internal/workflow"
)

var (
	syncConfig string
	syncOutput string
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate the Jekyll _config.yml from the main config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(syncConfig)
		if err != nil {
			return err
		}

		content, err := jekyll.RenderConfig(workflow.DefaultConfigTemplate, cfg.Jekyll)
		if err != nil {
			return err
		}

		if syncDryRun {
			fmt.Println("Dry run: generated config:")
			fmt.Println(content)
			return nil
		}

		if err := jekyll.WriteConfig(syncOutput, content); err != nil {
			return fmt.Errorf("writing site config: %w", err)
		}
		fmt.Printf("Generated %s\n", syncOutput)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncConfig, "config", "config.yml", "Path to main config file")
	syncCmd.Flags().StringVar(&syncOutput, "output", "jekyll/_config.yml", "Path to output Jekyll config")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print generated config without writing")
}

// GetSyncCmd exposes the command to the root command.
func GetSyncCmd() *cobra.Command {
	return syncCmd
}
