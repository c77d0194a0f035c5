// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands wires the roboblog CLI: incremental commit fetching, post
// generation, human post processing, site config sync, and the end-to-end
// update workflow.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/cmd/roboblog/internal/clierr"
	"github.com/bartekus/roboblog/internal/config"
)

// NewRootCmd constructs the roboblog root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("ROBOBLOG_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "roboblog",
		Short:         "roboblog - automated blog posts from your GitHub commit history",
		Long:          "roboblog fetches your recent GitHub commits, has an LLM write a blog post about them, and publishes the result into a Jekyll site.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of roboblog",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "roboblog version %s\n", version)
		},
	})

	cmd.AddCommand(GetFetchCmd())
	cmd.AddCommand(GetGenerateCmd())
	cmd.AddCommand(GetPostsCmd())
	cmd.AddCommand(GetSyncCmd())
	cmd.AddCommand(GetRunCmd())

	return cmd
}

// loadConfig reads and validates the configuration file, mapping failures to
// the configuration exit code.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if err := config.Load(path, cfg); err != nil {
		return nil, clierr.Wrap(clierr.CodeConfig, "configuration error", err)
	}
	return cfg, nil
}
