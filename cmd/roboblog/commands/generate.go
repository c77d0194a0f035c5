// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/internal/checkpoint"
	"github.com/bartekus/roboblog/internal/workflow"
)

var (
	generatePreview bool
	generateConfig  string
	generateInput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a blog post from fetched commit data",
	Long: `Generate reads the fetch output, formats a commit digest, asks the
configured LLM provider for a post, and writes it with Jekyll frontmatter
into the posts directory. With zero commits it writes a placeholder post when
enable_no_update_posts is set, and otherwise reports nothing to do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(generateConfig)
		if err != nil {
			return err
		}

		outcome, err := workflow.Generate(cmd.Context(), cfg, generateInput, generatePreview)
		if err != nil {
			return err
		}

		if outcome.NothingToDo {
			fmt.Println("No commits found and no-update posts are disabled; nothing to do.")
			return nil
		}

		if generatePreview {
			fmt.Println("\nPreview mode: no files will be written")
			fmt.Println("\nFilename:", outcome.Filename)
			fmt.Println("\nContent:")
			fmt.Println("============================================================")
			fmt.Println(outcome.Content)
			fmt.Println("============================================================")
			return nil
		}

		if err := checkpoint.NewStore("").Write(time.Now().UTC()); err != nil {
			return fmt.Errorf("updating checkpoint: %w", err)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "Output to stdout instead of writing a file")
	generateCmd.Flags().StringVar(&generateConfig, "config", "config.yml", "Path to config file")
	generateCmd.Flags().StringVar(&generateInput, "input", "data/commits.json", "Input commits JSON file")
}

// GetGenerateCmd exposes the command to the root command.
func GetGenerateCmd() *cobra.Command {
	return generateCmd
}
