// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the text-generation providers used to turn a commit
// digest into blog post content. One provider is selected at startup by
// configuration; an unknown selection is a configuration error.
package llm

import (
	"context"
	"fmt"

	"github.com/bartekus/roboblog/internal/config"
)

// Provider generates raw text from a prompt. Implementations must return the
// post content with no metadata header, starting with a single leading
// heading line. Any provider failure is fatal for the run.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// StructuredProvider is an optional interface for back-ends that can return
// the title and body as separate typed fields, avoiding free-text parsing.
type StructuredProvider interface {
	GenerateStructured(ctx context.Context, prompt string) (title, body string, err error)
}

// New selects and constructs the configured provider.
func New(cfg config.LLMConfig) (Provider, error) {
	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	opts := options{
		apiKey:      key,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAI(opts), nil
	case config.ProviderAnthropic:
		return newAnthropic(opts), nil
	case config.ProviderOllama:
		return newOllama(opts), nil
	case config.ProviderOpenRouter:
		return newOpenRouter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

type options struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}
