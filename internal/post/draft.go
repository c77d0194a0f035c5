// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import (
	"context"
	"regexp"
	"strings"

	"github.com/bartekus/roboblog/internal/llm"
)

// DefaultTitle is used when the generated text carries no heading.
const DefaultTitle = "Development Update"

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Draft is the parsed output of the generation provider.
type Draft struct {
	Title string
	Body  string
}

// GenerateDraft produces a draft from the provider. Back-ends that support
// typed structured output are preferred; everything else goes through
// free-text title extraction.
func GenerateDraft(ctx context.Context, provider llm.Provider, prompt string) (Draft, error) {
	if sp, ok := provider.(llm.StructuredProvider); ok {
		title, body, err := sp.GenerateStructured(ctx, prompt)
		if err != nil {
			return Draft{}, err
		}
		if title == "" {
			title = DefaultTitle
		}
		return Draft{Title: title, Body: strings.TrimSpace(body)}, nil
	}

	text, err := provider.Generate(ctx, prompt)
	if err != nil {
		return Draft{}, err
	}
	return ParseDraft(text), nil
}

// ParseDraft extracts the title from the first markdown heading and strips
// that heading from the body. Without a heading the title defaults and the
// text is kept as-is.
func ParseDraft(text string) Draft {
	loc := titleRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Draft{Title: DefaultTitle, Body: strings.TrimSpace(text)}
	}

	title := strings.TrimSpace(text[loc[2]:loc[3]])
	body := text[:loc[0]] + text[loc[1]:]
	return Draft{Title: title, Body: strings.TrimSpace(body)}
}
