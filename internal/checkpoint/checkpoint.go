// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checkpoint persists the "last processed" instant between runs.
package checkpoint

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultPath is the state file written at the repository root.
const DefaultPath = ".last_build"

// Store reads and writes a single RFC 3339 timestamp in a state file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Read returns the persisted timestamp. A missing or malformed file is not an
// error; it simply means no previous run is known.
func (s *Store) Read() (time.Time, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read checkpoint file", "path", s.path, "error", err)
		}
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		slog.Warn("malformed checkpoint timestamp", "path", s.path, "error", err)
		return time.Time{}, false
	}
	return t, true
}

// Write overwrites the state file with the given instant. Callers must only
// invoke this after every downstream step of a run succeeded; a crash before
// the write makes the next run re-scan overlapping history, which the
// extractor's deduplication absorbs.
func (s *Store) Write(t time.Time) error {
	return os.WriteFile(s.path, []byte(t.UTC().Format(time.RFC3339)), 0o644)
}
