// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commits defines the commit data model handed from the fetch stage
// to the generation stage.
package commits

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FileChange describes one file touched by a commit.
type FileChange struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
}

// Stats aggregates line counts for a commit.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// Commit is the canonical unit of fetch output. SHA is unique within a single
// fetch result; overlapping event pages are deduplicated before commits are
// recorded.
type Commit struct {
	SHA         string       `json:"sha"`
	Message     string       `json:"message"`
	Date        time.Time    `json:"date"`
	Author      string       `json:"author"`
	AuthorEmail string       `json:"author_email"`
	Repository  string       `json:"repository"`
	URL         string       `json:"url"`
	Files       []FileChange `json:"files"`
	Stats       Stats        `json:"stats"`
}

// ShortSHA returns the abbreviated commit identifier used in digests.
func (c Commit) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// RepoGroup is an ordered bucket of commits for one repository.
type RepoGroup struct {
	Name    string
	Commits []Commit
}

// RepoGroups preserves the order repositories were first discovered in the
// activity feed. It marshals as a JSON object whose key order follows the
// slice order.
type RepoGroups []RepoGroup

// Add appends a commit to its repository's group, creating the group on first
// sight.
func (g *RepoGroups) Add(c Commit) {
	for i := range *g {
		if (*g)[i].Name == c.Repository {
			(*g)[i].Commits = append((*g)[i].Commits, c)
			return
		}
	}
	*g = append(*g, RepoGroup{Name: c.Repository, Commits: []Commit{c}})
}

// Total returns the number of commits across all groups.
func (g RepoGroups) Total() int {
	n := 0
	for _, group := range g {
		n += len(group.Commits)
	}
	return n
}

// MarshalJSON renders the groups as an object with insertion-ordered keys.
func (g RepoGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(group.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		list, err := json.Marshal(group.Commits)
		if err != nil {
			return nil, err
		}
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into groups, keeping key order.
func (g *RepoGroups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("repositories: expected object, got %v", tok)
	}

	var groups RepoGroups
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("repositories: expected key, got %v", tok)
		}
		var list []Commit
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("repositories[%s]: %w", name, err)
		}
		groups = append(groups, RepoGroup{Name: name, Commits: list})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = groups
	return nil
}

// FetchResult is the artifact written once per fetch run, fully replacing any
// prior file. It is the sole input of the generation stage.
type FetchResult struct {
	FetchedAt    time.Time  `json:"fetched_at"`
	Since        time.Time  `json:"since"`
	TotalCommits int        `json:"total_commits"`
	Repositories RepoGroups `json:"repositories"`
}
