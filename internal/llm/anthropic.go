// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

type anthropic struct {
	opts    options
	baseURL string
	http    *http.Client
}

func newAnthropic(opts options) *anthropic {
	return &anthropic{opts: opts, baseURL: anthropicBaseURL, http: newAPIClient()}
}

func (a *anthropic) Name() string { return "anthropic" }

func (a *anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	req := struct {
		Model       string        `json:"model"`
		MaxTokens   int           `json:"max_tokens"`
		Temperature float64       `json:"temperature"`
		Messages    []chatMessage `json:"messages"`
	}{
		Model:       a.opts.model,
		MaxTokens:   a.opts.maxTokens,
		Temperature: a.opts.temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         a.opts.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := postJSON(ctx, a.http, a.baseURL+"/messages", headers, req, &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return resp.Content[0].Text, nil
}
