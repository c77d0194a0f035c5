// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates the roboblog configuration file.
package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"
)

// Config represents the full application configuration.
type Config struct {
	GitHub     GitHubConfig     `yaml:"github"`
	LLM        LLMConfig        `yaml:"llm"`
	Blog       BlogConfig       `yaml:"blog"`
	Automation AutomationConfig `yaml:"automation"`
	Jekyll     JekyllConfig     `yaml:"jekyll"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.GitHub.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	return c.Automation.Validate()
}

// GitHubConfig holds the account and repository filters for the fetch stage.
type GitHubConfig struct {
	Username     string   `yaml:"username"`
	RepoFilters  []string `yaml:"repo_filters"`
	ExcludeRepos []string `yaml:"exclude_repos"`
}

// Validate validates the GitHub configuration.
func (c *GitHubConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required),
	)
}

// Token returns the GitHub API token from the environment. An empty token is
// not an error; unauthenticated requests just run with a reduced quota.
func (c *GitHubConfig) Token() string {
	return os.Getenv("GITHUB_TOKEN")
}

// LLMConfig holds the generation provider selection and tuning knobs.
type LLMConfig struct {
	Provider     string  `yaml:"provider"`
	Model        string  `yaml:"model"`
	APIKeyEnv    string  `yaml:"api_key_env"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float64 `yaml:"temperature"`
	ArticleStyle string  `yaml:"article_style"`
}

// Validate validates the LLM configuration.
func (c *LLMConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required,
			validation.In(ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderOpenRouter)),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxTokens, validation.Min(1)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	)
}

// APIKey resolves the provider API key from the configured environment
// variable. Ollama runs locally and needs no key.
func (c *LLMConfig) APIKey() (string, error) {
	if c.Provider == ProviderOllama {
		return "", nil
	}
	envVar := c.APIKeyEnv
	if envVar == "" {
		envVar = "LLM_API_KEY"
	}
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("API key not found in environment variable: %s", envVar)
	}
	return key, nil
}

// BlogConfig controls the shape of generated posts.
type BlogConfig struct {
	DefaultTags         []string `yaml:"default_tags"`
	IncludeCodeSnippets bool     `yaml:"include_code_snippets"`
	IncludeStats        bool     `yaml:"include_stats"`
}

// AutomationConfig controls the incremental fetch window and placeholder posts.
type AutomationConfig struct {
	LookbackDays        int  `yaml:"lookback_days"`
	EnableNoUpdatePosts bool `yaml:"enable_no_update_posts"`
}

// Validate validates the automation configuration.
func (c *AutomationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LookbackDays, validation.Min(1)),
	)
}

// JekyllConfig holds the site metadata synced into jekyll/_config.yml.
type JekyllConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	URL         string `yaml:"url"`
	BaseURL     string `yaml:"baseurl"`
	PostsDir    string `yaml:"posts_dir"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:     ProviderAnthropic,
			Model:        "claude-3-5-sonnet-20241022",
			APIKeyEnv:    "LLM_API_KEY",
			MaxTokens:    2000,
			Temperature:  0.7,
			ArticleStyle: "technical",
		},
		Blog: BlogConfig{
			DefaultTags:         []string{"development", "updates"},
			IncludeCodeSnippets: true,
			IncludeStats:        true,
		},
		Automation: AutomationConfig{
			LookbackDays: 7,
		},
		Jekyll: JekyllConfig{
			PostsDir: "jekyll/_posts",
		},
	}
}

// Load reads the YAML config file into cfg, expanding environment variable
// references, and validates the result.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
