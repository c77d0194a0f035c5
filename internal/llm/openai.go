// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const openAIBaseURL = "https://api.openai.com/v1"

type openAI struct {
	opts    options
	baseURL string
	http    *http.Client
}

func newOpenAI(opts options) *openAI {
	return &openAI{opts: opts, baseURL: openAIBaseURL, http: newAPIClient()}
}

func (o *openAI) Name() string { return "openai" }

func (o *openAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.complete(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	return resp, nil
}

// GenerateStructured asks for a JSON object with explicit title and body
// fields instead of extracting them from free text.
func (o *openAI) GenerateStructured(ctx context.Context, prompt string) (string, string, error) {
	jsonPrompt := prompt + "\n\nRespond with a JSON object containing exactly two string fields: " +
		`"title" (the post headline, no markdown) and "body" (the complete post body in markdown).`

	raw, err := o.complete(ctx, jsonPrompt, &chatRespFormat{Type: "json_object"})
	if err != nil {
		return "", "", fmt.Errorf("openai: %w", err)
	}

	var draft struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return "", "", fmt.Errorf("openai: decoding structured response: %w", err)
	}
	return draft.Title, draft.Body, nil
}

func (o *openAI) complete(ctx context.Context, prompt string, format *chatRespFormat) (string, error) {
	req := chatRequest{
		Model:          o.opts.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    o.opts.temperature,
		ResponseFormat: format,
	}
	// Newer model families renamed the token limit parameter.
	if strings.Contains(o.opts.model, "gpt-4o") || strings.Contains(o.opts.model, "gpt-5") {
		req.MaxCompletionTokens = o.opts.maxTokens
	} else {
		req.MaxTokens = o.opts.maxTokens
	}

	headers := map[string]string{"Authorization": "Bearer " + o.opts.apiKey}

	var resp chatResponse
	if err := postJSON(ctx, o.http, o.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
