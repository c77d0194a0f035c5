// SPDX-License-Identifier: AGPL-3.0-or-later

// Package humanposts injects frontmatter into human-authored posts that lack
// it, deriving publish dates from git history instead of the current time.
package humanposts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bartekus/roboblog/internal/githistory"
	"github.com/bartekus/roboblog/internal/post"
)

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Processor scans a posts directory and prepends frontmatter where missing.
type Processor struct {
	PostsDir   string
	Categories []string
	DryRun     bool

	// repoRoot is resolved lazily; empty means the posts dir is not inside a
	// git repository and files fall back to the current time.
	repoRoot string

	now func() time.Time
}

// NewProcessor creates a processor for the given posts directory.
func NewProcessor(postsDir string, categories []string, dryRun bool) *Processor {
	if len(categories) == 0 {
		categories = []string{"blog"}
	}
	return &Processor{
		PostsDir:   postsDir,
		Categories: categories,
		DryRun:     dryRun,
		now:        time.Now,
	}
}

// ProcessAll walks every markdown file in the posts directory in sorted order
// and returns how many were processed and how many were skipped. Per-file
// errors are logged and counted as skipped; only a missing directory is
// fatal.
func (p *Processor) ProcessAll(ctx context.Context) (processed, skipped int, err error) {
	if _, err := os.Stat(p.PostsDir); err != nil {
		return 0, 0, fmt.Errorf("posts directory not found: %s", p.PostsDir)
	}

	if root, err := githistory.RepoRoot(ctx, p.PostsDir); err == nil {
		p.repoRoot = root
	} else {
		slog.Warn("posts directory not in a git repository, using current time for dates")
	}

	files, err := filepath.Glob(filepath.Join(p.PostsDir, "*.md"))
	if err != nil {
		return 0, 0, err
	}
	sort.Strings(files)

	for _, file := range files {
		ok, err := p.processFile(ctx, file)
		if err != nil {
			slog.Warn("skipping post", "file", file, "error", err)
			skipped++
			continue
		}
		if ok {
			processed++
		} else {
			skipped++
		}
	}
	return processed, skipped, nil
}

// processFile injects frontmatter into one file. It returns false when the
// file already has a header, which makes repeated runs a no-op.
func (p *Processor) processFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	content := string(data)

	if post.HasFrontmatter(content) {
		return false, nil
	}

	title := ExtractTitle(content, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	var created, modified time.Time
	if p.repoRoot != "" {
		created, modified, _ = githistory.FileDates(ctx, p.repoRoot, path)
	}
	if created.IsZero() {
		slog.Info("file not in git, using current time", "file", filepath.Base(path))
		created = p.now().UTC()
		modified = time.Time{}
	}

	fm := post.Frontmatter{
		Title:      title,
		Created:    created,
		Modified:   modified,
		Categories: p.Categories,
		AuthorType: "human",
	}
	updated := fm.Render() + "\n" + content

	if p.DryRun {
		fmt.Printf("  [dry run] would add frontmatter to %s (title %q)\n", filepath.Base(path), title)
		return true, nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("writing file: %w", err)
	}
	return true, nil
}

// ExtractTitle returns the first "# " heading, or a title derived from the
// filename: date prefix stripped, separators turned into spaces, title-cased.
func ExtractTitle(content, filename string) string {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			if title := strings.TrimSpace(trimmed[2:]); title != "" {
				return title
			}
		}
	}

	name := datePrefixRe.ReplaceAllString(filename, "")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
