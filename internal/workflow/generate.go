// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bartekus/roboblog/internal/commits"
	"github.com/bartekus/roboblog/internal/config"
	"github.com/bartekus/roboblog/internal/llm"
	"github.com/bartekus/roboblog/internal/post"
)

// GenerateOutcome reports what the generation stage produced.
type GenerateOutcome struct {
	// NothingToDo is set when there were no commits and no-update posts are
	// disabled. It is a clean outcome, not an error.
	NothingToDo bool
	Filename    string
	Content     string
	Path        string
}

// Generate turns the fetch artifact into a finished post. With zero commits
// it either produces the placeholder post (when enabled) or reports a clean
// nothing-to-do outcome. Preview mode assembles everything but writes no
// files.
func Generate(ctx context.Context, cfg *config.Config, input string, preview bool) (GenerateOutcome, error) {
	data, err := commits.Load(input)
	if err != nil {
		return GenerateOutcome{}, err
	}

	var draft post.Draft
	now := time.Now().UTC()

	if data.TotalCommits == 0 {
		if !cfg.Automation.EnableNoUpdatePosts {
			return GenerateOutcome{NothingToDo: true}, nil
		}
		fmt.Println("  No commits found, generating no-update post")
		draft = post.NoUpdateDraft(now)
	} else {
		fmt.Printf("  Found %d commits\n", data.TotalCommits)

		provider, err := llm.New(cfg.LLM)
		if err != nil {
			return GenerateOutcome{}, err
		}
		fmt.Printf("  Provider: %s, model: %s\n", provider.Name(), cfg.LLM.Model)

		prompt := post.BuildPrompt(cfg.LLM.ArticleStyle,
			cfg.Blog.IncludeCodeSnippets, cfg.Blog.IncludeStats, post.Digest(data))

		fmt.Println("  Generating blog post (this may take a moment)...")
		draft, err = post.GenerateDraft(ctx, provider, prompt)
		if err != nil {
			return GenerateOutcome{}, fmt.Errorf("generating post: %w", err)
		}
	}

	fm := post.Frontmatter{
		Title:      draft.Title,
		Created:    now,
		Categories: cfg.Blog.DefaultTags,
		Author:     cfg.Jekyll.Author,
	}
	content := post.Compose(fm, draft.Body)
	filename := post.Filename(draft.Title, now)

	outcome := GenerateOutcome{Filename: filename, Content: content}
	if preview {
		return outcome, nil
	}

	writer := post.Writer{Dir: cfg.Jekyll.PostsDir}
	path, err := writer.Write(filename, content)
	if err != nil {
		return GenerateOutcome{}, fmt.Errorf("writing post: %w", err)
	}
	outcome.Path = path
	fmt.Printf("  Written blog post to %s\n", path)
	return outcome, nil
}

// GenerateStep wires Generate into the orchestrated workflow. A
// nothing-to-do outcome halts the remaining steps cleanly.
type GenerateStep struct{}

func (GenerateStep) Name() string { return "Generating blog post" }

func (GenerateStep) Run(ctx context.Context, deps *Deps) (StepResult, error) {
	if deps.DryRun {
		return StepResult{Note: "dry run: generation skipped"}, nil
	}

	outcome, err := Generate(ctx, deps.Config, deps.CommitsPath, false)
	if err != nil {
		return StepResult{}, err
	}
	if outcome.NothingToDo {
		return StepResult{Halt: true, Note: "No new commits to process"}, nil
	}
	return StepResult{Note: "Generated " + outcome.Filename}, nil
}
