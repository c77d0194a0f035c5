// SPDX-License-Identifier: AGPL-3.0-or-later

// Package post assembles blog posts: it renders the commit digest fed to the
// generation provider, builds the styled prompt, parses the returned draft,
// and renders Jekyll frontmatter.
package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/bartekus/roboblog/internal/commits"
)

// maxDigestFiles caps the per-commit file listing in the digest.
const maxDigestFiles = 10

// Digest renders a deterministic, human-readable summary of a fetch result.
// It is passed verbatim to the generation provider.
func Digest(result *commits.FetchResult) string {
	if result.TotalCommits == 0 {
		return "No commits found in the specified time period."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total commits: %d\n", result.TotalCommits)
	fmt.Fprintf(&b, "Time period: %s to %s\n\n",
		result.Since.Format(time.RFC3339), result.FetchedAt.Format(time.RFC3339))

	for _, group := range result.Repositories {
		fmt.Fprintf(&b, "## Repository: %s\n", group.Name)
		fmt.Fprintf(&b, "Commits: %d\n\n", len(group.Commits))

		for _, c := range group.Commits {
			fmt.Fprintf(&b, "### Commit: %s\n", c.ShortSHA())
			fmt.Fprintf(&b, "Author: %s\n", c.Author)
			fmt.Fprintf(&b, "Date: %s\n", c.Date.Format(time.RFC3339))
			fmt.Fprintf(&b, "Message: %s\n", c.Message)

			if len(c.Files) > 0 {
				fmt.Fprintf(&b, "Files changed (%d):\n", len(c.Files))
				for i, f := range c.Files {
					if i == maxDigestFiles {
						fmt.Fprintf(&b, "  ... and %d more files\n", len(c.Files)-maxDigestFiles)
						break
					}
					fmt.Fprintf(&b, "  - %s: %s\n", f.Status, f.Filename)
				}
			}

			fmt.Fprintf(&b, "Stats: +%d -%d\n", c.Stats.Additions, c.Stats.Deletions)
			fmt.Fprintf(&b, "URL: %s\n\n", c.URL)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
