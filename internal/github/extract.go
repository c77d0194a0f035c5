// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bartekus/roboblog/internal/commits"
)

// detailDelay is the politeness pause between per-commit detail fetches.
const detailDelay = 300 * time.Millisecond

// DetailFetcher provides per-commit enrichment. A nil detail with a nil error
// means the record is unavailable and the commit should be dropped.
type DetailFetcher interface {
	CommitDetail(ctx context.Context, repo, sha string) (*CommitDetail, error)
}

// Extractor turns a raw event sequence into deduplicated, filtered, enriched
// commits. It keeps only push events strictly after Since, applies the
// repository include/exclude sets (exclude wins), deduplicates by SHA across
// events and pages, and enriches survivors through the DetailFetcher.
type Extractor struct {
	Since   time.Time
	Include []string
	Exclude []string
	Details DetailFetcher

	sleep func(time.Duration)
}

// NewExtractor creates an extractor over the given detail source.
func NewExtractor(since time.Time, include, exclude []string, details DetailFetcher) *Extractor {
	return &Extractor{
		Since:   since,
		Include: include,
		Exclude: exclude,
		Details: details,
		sleep:   time.Sleep,
	}
}

// Extract walks the event feed and returns the surviving commits in the order
// they were discovered. Per-commit failures are dropped silently; only the
// sequence as a whole can fail.
func (e *Extractor) Extract(ctx context.Context, events []Event) ([]commits.Commit, error) {
	var out []commits.Commit
	seen := make(map[string]struct{})
	pushEvents := 0
	emptyPayloads := 0

	for _, event := range events {
		if event.Type != PushEventType {
			continue
		}

		eventTime, err := time.Parse(time.RFC3339, event.CreatedAt)
		if err != nil {
			continue
		}
		// Strictly after the checkpoint, so the boundary event is never
		// reprocessed.
		if !eventTime.After(e.Since) {
			continue
		}

		if e.excluded(event.Repo.Name) {
			continue
		}

		pushEvents++
		if len(event.Payload.Commits) == 0 {
			emptyPayloads++
		}

		for _, stub := range event.Payload.Commits {
			if _, dup := seen[stub.SHA]; dup {
				continue
			}
			seen[stub.SHA] = struct{}{}

			detail, err := e.Details.CommitDetail(ctx, event.Repo.Name, stub.SHA)
			if err != nil {
				slog.Warn("commit detail fetch failed", "sha", stub.SHA, "error", err)
				continue
			}
			if detail == nil {
				continue
			}

			out = append(out, mergeCommit(stub, detail, event.Repo.Name, eventTime))
			e.sleep(detailDelay)
		}
	}

	if pushEvents > 0 && emptyPayloads == pushEvents {
		// Known characteristic of the events API when the token lacks scopes:
		// push events arrive but their commit payloads are empty.
		slog.Warn("all push events had empty commit payloads",
			"push_events", pushEvents,
			"hint", "GITHUB_TOKEN may be invalid, expired, or missing the 'public_repo' scope; "+
				"check your .env, generate a new token at https://github.com/settings/tokens, "+
				"and remove .last_build before retrying")
	}

	return out, nil
}

// excluded reports whether a repository is filtered out, matching on either
// the short name or the owner-qualified name. The exclude set takes
// precedence over the include set.
func (e *Extractor) excluded(repoName string) bool {
	short := repoName
	if i := strings.LastIndex(repoName, "/"); i >= 0 {
		short = repoName[i+1:]
	}

	for _, ex := range e.Exclude {
		if ex == short || ex == repoName {
			return true
		}
	}

	if len(e.Include) > 0 {
		for _, in := range e.Include {
			if in == short || in == repoName {
				return false
			}
		}
		return true
	}

	return false
}

// mergeCommit combines a push stub with its detail record. The detail record
// is authoritative for message, author, and stats; the event timestamp is the
// fallback when the detail lacks an authored date.
func mergeCommit(stub CommitStub, detail *CommitDetail, repoName string, eventTime time.Time) commits.Commit {
	date := detail.Commit.Author.Date
	if date.IsZero() {
		date = eventTime
	}

	author := detail.Commit.Author.Name
	if author == "" {
		author = "Unknown"
	}

	files := make([]commits.FileChange, 0, len(detail.Files))
	for _, f := range detail.Files {
		files = append(files, commits.FileChange{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Changes:   f.Changes,
		})
	}

	return commits.Commit{
		SHA:         stub.SHA,
		Message:     detail.Commit.Message,
		Date:        date,
		Author:      author,
		AuthorEmail: detail.Commit.Author.Email,
		Repository:  repoName,
		URL:         detail.HTMLURL,
		Files:       files,
		Stats: commits.Stats{
			Additions: detail.Stats.Additions,
			Deletions: detail.Stats.Deletions,
			Total:     detail.Stats.Total,
		},
	}
}
