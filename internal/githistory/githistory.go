// SPDX-License-Identifier: AGPL-3.0-or-later

// Package githistory derives creation and modification timestamps for files
// from local git history. It only ever reads; history is never mutated.
package githistory

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// RepoRoot resolves the git repository root containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// FileDates returns the creation instant (first commit that added the file,
// following renames) and the last modification instant (most recent commit
// touching it). A file with no history returns two zero times and no error;
// callers fall back to the current time and omit the modification.
func FileDates(ctx context.Context, repoRoot, path string) (created, modified time.Time, err error) {
	created = lastTimestamp(ctx, repoRoot,
		"log", "--diff-filter=A", "--follow", "--format=%aI", "--", path)
	modified = firstTimestamp(ctx, repoRoot,
		"log", "-1", "--format=%aI", "--", path)
	return created, modified, nil
}

// lastTimestamp runs a git log variant and parses the last output line, which
// for --diff-filter=A is the earliest commit.
func lastTimestamp(ctx context.Context, repoRoot string, args ...string) time.Time {
	lines := gitLines(ctx, repoRoot, args...)
	if len(lines) == 0 {
		return time.Time{}
	}
	return parseISO(lines[len(lines)-1])
}

func firstTimestamp(ctx context.Context, repoRoot string, args ...string) time.Time {
	lines := gitLines(ctx, repoRoot, args...)
	if len(lines) == 0 {
		return time.Time{}
	}
	return parseISO(lines[0])
}

func gitLines(ctx context.Context, repoRoot string, args ...string) []string {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
