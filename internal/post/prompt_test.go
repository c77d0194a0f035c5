// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleInstruction(t *testing.T) {
	got := StyleInstruction("casual", false, false)
	assert.Contains(t, got, "casual, conversational")
	assert.NotContains(t, got, "code snippets")
	assert.NotContains(t, got, "statistics")

	got = StyleInstruction("technical", true, true)
	assert.Contains(t, got, "code snippets")
	assert.Contains(t, got, "statistics")

	// Unknown styles fall back rather than failing.
	got = StyleInstruction("interpretive-dance", false, false)
	assert.Contains(t, got, defaultStyleInstruction)
}

func TestBuildPrompt(t *testing.T) {
	digest := "Total commits: 2\n"
	got := BuildPrompt("concise", false, true, digest)

	assert.Contains(t, got, "DO NOT include Jekyll frontmatter")
	assert.Contains(t, got, "Start with a markdown heading")
	assert.Contains(t, got, digest)
	assert.Contains(t, got, "Now write the blog post:")
}
