// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	t.Setenv("BLOG_AUTHOR", "Octo")

	path := writeConfig(t, `
github:
  username: octocat
  repo_filters: [widgets]
  exclude_repos: [secrets]
llm:
  provider: anthropic
  model: claude-3-5-sonnet-20241022
  max_tokens: 2000
  temperature: 0.7
  article_style: technical
blog:
  default_tags: [development, updates]
  include_stats: true
automation:
  lookback_days: 7
  enable_no_update_posts: true
jekyll:
  title: Dev Log
  author: ${BLOG_AUTHOR}
  posts_dir: jekyll/_posts
`)

	cfg := NewDefaultConfig()
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, []string{"widgets"}, cfg.GitHub.RepoFilters)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.True(t, cfg.Automation.EnableNoUpdatePosts)
	// ${BLOG_AUTHOR} is expanded from the environment before parsing.
	assert.Equal(t, "Octo", cfg.Jekyll.Author)
}

func TestLoadValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing username",
			content: `
llm:
  provider: anthropic
  model: m
`,
		},
		{
			name: "unknown provider",
			content: `
github:
  username: octocat
llm:
  provider: bard
  model: m
`,
		},
		{
			name: "missing model",
			content: `
github:
  username: octocat
llm:
  provider: openai
`,
		},
		{
			name: "temperature out of range",
			content: `
github:
  username: octocat
llm:
  provider: openai
  model: m
  temperature: 3.5
`,
		},
		{
			name: "negative max tokens",
			content: `
github:
  username: octocat
llm:
  provider: openai
  model: m
  max_tokens: -5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			err := Load(writeConfig(t, tt.content), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Config
	err := Load(filepath.Join(t.TempDir(), "absent.yml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedYAML(t *testing.T) {
	var cfg Config
	err := Load(writeConfig(t, "github: [this is: not valid"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "default-key")
	t.Setenv("CUSTOM_KEY", "custom-key")

	key, err := (&LLMConfig{Provider: ProviderOpenAI}).APIKey()
	require.NoError(t, err)
	assert.Equal(t, "default-key", key)

	key, err = (&LLMConfig{Provider: ProviderOpenAI, APIKeyEnv: "CUSTOM_KEY"}).APIKey()
	require.NoError(t, err)
	assert.Equal(t, "custom-key", key)

	_, err = (&LLMConfig{Provider: ProviderOpenAI, APIKeyEnv: "UNSET_KEY_VAR"}).APIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNSET_KEY_VAR")

	key, err = (&LLMConfig{Provider: ProviderOllama}).APIKey()
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, 7, cfg.Automation.LookbackDays)
	assert.Equal(t, "jekyll/_posts", cfg.Jekyll.PostsDir)
}
