// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/roboblog/internal/humanposts"
)

var (
	postsDir    string
	postsDryRun bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Add frontmatter to human-written posts",
	Long: `Posts scans the posts directory for markdown files without
frontmatter, derives publish dates from git history (falling back to the
current time for untracked files), and prepends a Jekyll header marked
author_type: human. Files that already have a header are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if postsDryRun {
			fmt.Println("Dry run: no files will be modified")
		}

		proc := humanposts.NewProcessor(postsDir, nil, postsDryRun)
		processed, skipped, err := proc.ProcessAll(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Processed: %d file(s)\n", processed)
		fmt.Printf("Skipped:   %d file(s) (already have frontmatter)\n", skipped)
		return nil
	},
}

func init() {
	postsCmd.Flags().StringVar(&postsDir, "posts-dir", "jekyll/_posts", "Path to posts directory")
	postsCmd.Flags().BoolVar(&postsDryRun, "dry-run", false, "Preview changes without modifying files")
}

// GetPostsCmd exposes the command to the root command.
func GetPostsCmd() *cobra.Command {
	return postsCmd
}
