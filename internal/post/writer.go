// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Compose joins a rendered frontmatter block with a post body.
func Compose(f Frontmatter, body string) string {
	return f.Render() + "\n" + strings.TrimSpace(body) + "\n"
}

// Writer writes finished posts into the site's content directory.
type Writer struct {
	Dir string
}

// Write stores a post atomically (temp file plus rename) so a terminated run
// never leaves a half-written post for the site builder to pick up.
func (w Writer) Write(filename, content string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating posts directory %s: %w", w.Dir, err)
	}

	path := filepath.Join(w.Dir, filename)

	tmp, err := os.CreateTemp(w.Dir, "post-tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing post: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving post to %s: %w", path, err)
	}
	return path, nil
}
