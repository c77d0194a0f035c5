// SPDX-License-Identifier: AGPL-3.0-or-later

package jekyll

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// BuildResult reports what the build step did.
type BuildResult struct {
	Skipped bool
	Reason  string
}

// Build runs `bundle exec jekyll build` from the site directory. A missing
// bundler or Gemfile is a soft skip, not a failure; only a non-zero exit from
// an actual build attempt is an error.
func Build(ctx context.Context, siteDir, destination string) (BuildResult, error) {
	if _, err := exec.LookPath("bundle"); err != nil {
		slog.Warn("bundle not found, skipping Jekyll build",
			"hint", "install with: gem install bundler && bundle install")
		return BuildResult{Skipped: true, Reason: "bundle not found"}, nil
	}

	if _, err := os.Stat(filepath.Join(siteDir, "Gemfile")); err != nil {
		slog.Warn("Gemfile not found, skipping Jekyll build", "dir", siteDir)
		return BuildResult{Skipped: true, Reason: "Gemfile not found"}, nil
	}

	if destination == "" {
		destination = "_site"
	}

	cmd := exec.CommandContext(ctx, "bundle", "exec", "jekyll", "build", "--destination", destination)
	cmd.Dir = siteDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return BuildResult{}, fmt.Errorf("jekyll build failed (exit %d):\n%s", exitCode, tail(string(out), 20))
	}

	return BuildResult{}, nil
}

// tail keeps the last n lines of command output for error messages.
func tail(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) <= n {
		return strings.TrimSpace(output)
	}
	return "...(truncated)...\n" + strings.Join(lines[len(lines)-n:], "\n")
}
