// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"fmt"
	"net/http"
)

const ollamaBaseURL = "http://localhost:11434"

type ollama struct {
	opts    options
	baseURL string
	http    *http.Client
}

func newOllama(opts options) *ollama {
	return &ollama{opts: opts, baseURL: ollamaBaseURL, http: newAPIClient()}
}

func (o *ollama) Name() string { return "ollama" }

func (o *ollama) Generate(ctx context.Context, prompt string) (string, error) {
	req := struct {
		Model   string `json:"model"`
		Prompt  string `json:"prompt"`
		Stream  bool   `json:"stream"`
		Options struct {
			Temperature float64 `json:"temperature"`
			NumPredict  int     `json:"num_predict"`
		} `json:"options"`
	}{
		Model:  o.opts.model,
		Prompt: prompt,
	}
	req.Options.Temperature = o.opts.temperature
	req.Options.NumPredict = o.opts.maxTokens

	var resp struct {
		Response string `json:"response"`
	}
	if err := postJSON(ctx, o.http, o.baseURL+"/api/generate", nil, req, &resp); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return resp.Response, nil
}
