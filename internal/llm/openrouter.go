// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"fmt"
	"net/http"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type openRouter struct {
	opts    options
	baseURL string
	http    *http.Client
}

func newOpenRouter(opts options) *openRouter {
	return &openRouter{opts: opts, baseURL: openRouterBaseURL, http: newAPIClient()}
}

func (o *openRouter) Name() string { return "openrouter" }

func (o *openRouter) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:       o.opts.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: o.opts.temperature,
		MaxTokens:   o.opts.maxTokens,
	}

	headers := map[string]string{"Authorization": "Bearer " + o.opts.apiKey}

	var resp chatResponse
	if err := postJSON(ctx, o.http, o.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
