// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import "strings"

// styleInstructions maps each article style to its instruction sentence.
// Unrecognized styles fall back to a generic professional instruction.
var styleInstructions = map[string]string{
	"technical": "Write in a technical, detailed style with code examples and technical terminology.",
	"casual":    "Write in a casual, conversational tone that's easy to read.",
	"detailed":  "Write a comprehensive, in-depth analysis with extensive details.",
	"concise":   "Write a brief, to-the-point summary focusing on key points.",
	"tutorial":  "Write in a tutorial style, explaining steps and providing guidance.",
	"story":     "Write in a narrative, story-telling style that engages readers.",
}

const defaultStyleInstruction = "Write in a professional, informative style."

// StyleInstruction resolves a style name to its full instruction, including
// the conditional code/stats clauses.
func StyleInstruction(style string, includeCode, includeStats bool) string {
	base, ok := styleInstructions[style]
	if !ok {
		base = defaultStyleInstruction
	}

	parts := []string{base}
	if includeCode {
		parts = append(parts, "Include relevant code snippets where appropriate.")
	}
	if includeStats {
		parts = append(parts, "Include statistics about changes (lines added/removed, files changed).")
	}
	parts = append(parts,
		"Group related changes together logically.",
		"Use only information from commit messages, don't guess implementation details.")

	return strings.Join(parts, " ")
}

// BuildPrompt wraps a commit digest with the style instruction and the
// formatting contract the response parser relies on: no frontmatter, and a
// single leading markdown heading that becomes the title.
func BuildPrompt(style string, includeCode, includeStats bool, digest string) string {
	var b strings.Builder

	b.WriteString("You are a technical blog post writer. Generate a blog post based on the following development activity.\n\n")
	b.WriteString(StyleInstruction(style, includeCode, includeStats))
	b.WriteString("\n\n")
	b.WriteString("IMPORTANT FORMATTING REQUIREMENTS:\n")
	b.WriteString("- Write ONLY the blog post content (title and body)\n")
	b.WriteString("- DO NOT include Jekyll frontmatter (no --- delimiters, no YAML metadata)\n")
	b.WriteString("- Start with a markdown heading (# Title)\n")
	b.WriteString("- Use proper markdown formatting\n")
	b.WriteString("- Make the content engaging and informative\n")
	b.WriteString("- Focus on the \"why\" and \"what\" rather than just listing commits\n\n")
	b.WriteString("DEVELOPMENT ACTIVITY:\n\n")
	b.WriteString(digest)
	b.WriteString("\nNow write the blog post:")

	return b.String()
}
