// SPDX-License-Identifier: AGPL-3.0-or-later

// Package github talks to the GitHub REST API: it lists a user's activity
// events with pagination and rate-limit backoff, and fetches per-commit
// detail records.
package github

import "time"

// PushEventType is the only event type that carries commit data.
const PushEventType = "PushEvent"

// Event is one record from the user activity feed. CreatedAt stays a string
// here so a single malformed timestamp drops one event instead of failing the
// whole page; the extractor parses it.
type Event struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload EventPayload `json:"payload"`
}

// EventPayload holds the commit stubs embedded in a push event.
type EventPayload struct {
	Commits []CommitStub `json:"commits"`
}

// CommitStub is the abbreviated commit reference inside a push payload.
type CommitStub struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
}

// CommitDetail is the enrichment record fetched per commit.
type CommitDetail struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Files []struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Changes   int    `json:"changes"`
	} `json:"files"`
	Stats struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
		Total     int `json:"total"`
	} `json:"stats"`
}

type rateLimitResponse struct {
	Resources struct {
		Core struct {
			Remaining int   `json:"remaining"`
			Reset     int64 `json:"reset"`
		} `json:"core"`
	} `json:"resources"`
}
