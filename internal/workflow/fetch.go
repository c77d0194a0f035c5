// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bartekus/roboblog/internal/checkpoint"
	"github.com/bartekus/roboblog/internal/commits"
	"github.com/bartekus/roboblog/internal/config"
	"github.com/bartekus/roboblog/internal/github"
)

// ResolveSince determines the lower bound of the fetch window: the persisted
// checkpoint when one exists, otherwise now minus the lookback window.
func ResolveSince(store *checkpoint.Store, lookbackDays int, now time.Time) time.Time {
	if t, ok := store.Read(); ok {
		fmt.Printf("  Last run: %s\n", t.Format(time.RFC3339))
		return t
	}
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	fmt.Printf("  No previous run found, looking back %d days\n", lookbackDays)
	return now.AddDate(0, 0, -lookbackDays)
}

// Fetch runs the incremental fetch: validate credentials, page through the
// activity feed, extract and enrich commits, and group them by repository.
// It does not persist anything; callers own the artifact and checkpoint
// writes so a failed downstream stage never advances state.
func Fetch(ctx context.Context, cfg *config.Config, since time.Time) (*commits.FetchResult, error) {
	client := github.NewClient(cfg.GitHub.Token())

	if err := client.ValidateToken(ctx); err != nil {
		return nil, err
	}

	events, err := client.UserEvents(ctx, cfg.GitHub.Username)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	fmt.Printf("  Fetched %d events total\n", len(events))

	extractor := github.NewExtractor(since, cfg.GitHub.RepoFilters, cfg.GitHub.ExcludeRepos, client)
	found, err := extractor.Extract(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("extracting commits: %w", err)
	}
	fmt.Printf("  Found %d commits\n", len(found))

	var groups commits.RepoGroups
	for _, c := range found {
		groups.Add(c)
	}
	fmt.Printf("  Commits across %d repositories\n", len(groups))
	for _, g := range groups {
		fmt.Printf("    - %s: %d commits\n", g.Name, len(g.Commits))
	}

	return &commits.FetchResult{
		FetchedAt:    time.Now().UTC(),
		Since:        since,
		TotalCommits: groups.Total(),
		Repositories: groups,
	}, nil
}

// FetchStep wires Fetch into the orchestrated workflow, writing the artifact
// but leaving the checkpoint alone until the whole run has succeeded.
type FetchStep struct{}

func (FetchStep) Name() string { return "Fetching commits from GitHub" }

func (FetchStep) Run(ctx context.Context, deps *Deps) (StepResult, error) {
	store := checkpoint.NewStore("")
	since := ResolveSince(store, deps.Config.Automation.LookbackDays, time.Now().UTC())

	result, err := Fetch(ctx, deps.Config, since)
	if err != nil {
		return StepResult{}, err
	}

	if deps.DryRun {
		return StepResult{Note: "dry run: fetch output not written"}, nil
	}
	if err := commits.Write(deps.CommitsPath, result); err != nil {
		return StepResult{}, fmt.Errorf("writing fetch output: %w", err)
	}
	return StepResult{Note: fmt.Sprintf("Found %d commits to process", result.TotalCommits)}, nil
}
