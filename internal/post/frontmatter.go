// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// delimiter opens and closes every frontmatter block. HasFrontmatter keys off
// it, which is what makes header injection idempotent.
const delimiter = "---"

// dateLayout is the Jekyll frontmatter date format.
const dateLayout = "2006-01-02 15:04:05 -0700"

// Frontmatter describes the metadata header of a post.
type Frontmatter struct {
	Title      string
	Created    time.Time // zero means "use Now"
	Modified   time.Time // emitted only when set and different from Created
	Categories []string
	Author     string
	AuthorType string // empty omits the author_type line

	// Now is the clock used when Created is unset; nil means time.Now.
	Now func() time.Time
}

// Render produces the delimited metadata block, terminated by a blank line so
// the body can be appended directly.
func (f Frontmatter) Render() string {
	created := f.Created
	if created.IsZero() {
		now := time.Now
		if f.Now != nil {
			now = f.Now
		}
		created = now().UTC()
	}

	lines := []string{
		delimiter,
		"layout: post",
		fmt.Sprintf("title: %q", f.Title),
		"date: " + created.Format(dateLayout),
	}

	if !f.Modified.IsZero() && !f.Created.IsZero() && !f.Modified.Equal(f.Created) {
		lines = append(lines, "last_modified: "+f.Modified.Format(dateLayout))
	}

	lines = append(lines, "categories: "+strings.Join(f.Categories, " "))
	if f.Author != "" {
		lines = append(lines, "author: "+f.Author)
	}
	if f.AuthorType != "" {
		lines = append(lines, "author_type: "+f.AuthorType)
	}
	lines = append(lines, delimiter, "")

	return strings.Join(lines, "\n")
}

// HasFrontmatter reports whether content already starts with a frontmatter
// block. Repeated injection runs detect rendered output and skip it.
func HasFrontmatter(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), delimiter)
}

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Filename derives the Jekyll post filename from a title and date:
// lower-cased, punctuation stripped, whitespace and hyphen runs collapsed to
// single hyphens, prefixed with YYYY-MM-DD.
func Filename(title string, date time.Time) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), slug)
}
