// SPDX-License-Identifier: AGPL-3.0-or-later

package jekyll

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/roboblog/internal/config"
)

const testTemplate = `title: {{.Title}}
description: {{.Description}}
author: {{.Author}}
url: {{.URL}}
baseurl: {{.BaseURL}}
theme: minima
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "_config.yml.template")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderConfig(t *testing.T) {
	path := writeTemplate(t, testTemplate)

	got, err := RenderConfig(path, config.JekyllConfig{
		Title:       "Dev Log",
		Description: "What I shipped",
		Author:      "Octo",
		URL:         "https://octo.example.com",
		BaseURL:     "/blog",
	})
	require.NoError(t, err)

	assert.Contains(t, got, "title: Dev Log")
	assert.Contains(t, got, "author: Octo")
	assert.Contains(t, got, "baseurl: /blog")
	// Lines the template carries verbatim survive rendering.
	assert.Contains(t, got, "theme: minima")
}

func TestRenderConfigDefaultTitle(t *testing.T) {
	path := writeTemplate(t, testTemplate)

	got, err := RenderConfig(path, config.JekyllConfig{})
	require.NoError(t, err)
	assert.Contains(t, got, "title: My Blog")
}

func TestRenderConfigMissingTemplate(t *testing.T) {
	_, err := RenderConfig(filepath.Join(t.TempDir(), "absent.template"), config.JekyllConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestRenderConfigBadTemplate(t *testing.T) {
	path := writeTemplate(t, "title: {{.Title")
	_, err := RenderConfig(path, config.JekyllConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template")
}

func TestWriteConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "_config.yml")
	require.NoError(t, WriteConfig(path, "title: x\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: x\n", string(data))
}

func TestBuildSoftSkipsWithoutTooling(t *testing.T) {
	// An empty site dir has no Gemfile; with bundler absent the build skips
	// even earlier. Either way nothing runs and nothing fails.
	res, err := Build(context.Background(), t.TempDir(), "")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.NotEmpty(t, res.Reason)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "a\nb", tail("a\nb\n", 5))

	long := "1\n2\n3\n4\n5"
	got := tail(long, 2)
	assert.Contains(t, got, "truncated")
	assert.Contains(t, got, "4\n5")
	assert.NotContains(t, got, "1")
}
