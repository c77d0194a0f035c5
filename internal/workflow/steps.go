// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"fmt"
	"os"

	"github.com/bartekus/roboblog/internal/humanposts"
	"github.com/bartekus/roboblog/internal/jekyll"
)

// Default site layout paths.
const (
	DefaultSiteDir        = "jekyll"
	DefaultConfigTemplate = "jekyll/_config.yml.template"
	DefaultSiteConfig     = "jekyll/_config.yml"
)

// SyncConfigStep regenerates jekyll/_config.yml from the main configuration.
type SyncConfigStep struct{}

func (SyncConfigStep) Name() string { return "Syncing Jekyll configuration" }

func (SyncConfigStep) Run(ctx context.Context, deps *Deps) (StepResult, error) {
	content, err := jekyll.RenderConfig(DefaultConfigTemplate, deps.Config.Jekyll)
	if err != nil {
		return StepResult{}, err
	}
	if deps.DryRun {
		return StepResult{Note: "dry run: site config not written"}, nil
	}
	if err := jekyll.WriteConfig(DefaultSiteConfig, content); err != nil {
		return StepResult{}, fmt.Errorf("writing site config: %w", err)
	}
	return StepResult{Note: "Generated " + DefaultSiteConfig}, nil
}

// HumanPostsStep injects frontmatter into human-authored posts. Problems
// here degrade single posts, never the workflow.
type HumanPostsStep struct{}

func (HumanPostsStep) Name() string { return "Processing human-written posts" }

func (HumanPostsStep) Run(ctx context.Context, deps *Deps) (StepResult, error) {
	proc := humanposts.NewProcessor(deps.Config.Jekyll.PostsDir, nil, deps.DryRun)
	processed, skipped, err := proc.ProcessAll(ctx)
	if err != nil {
		// Not critical; the generated post is already on disk.
		return StepResult{Skipped: true, Note: "human post processing had issues (continuing): " + err.Error()}, nil
	}
	return StepResult{Note: fmt.Sprintf("Processed %d, skipped %d", processed, skipped)}, nil
}

// BuildStep runs the site builder unless skipped.
type BuildStep struct{}

func (BuildStep) Name() string { return "Building Jekyll site" }

func (BuildStep) Run(ctx context.Context, deps *Deps) (StepResult, error) {
	if deps.SkipBuild {
		return StepResult{Skipped: true, Note: "skipped by --skip-build"}, nil
	}
	if deps.DryRun {
		return StepResult{Note: "dry run: build not executed"}, nil
	}

	dest := os.Getenv("JEKYLL_BUILD_DESTINATION")
	res, err := jekyll.Build(ctx, DefaultSiteDir, dest)
	if err != nil {
		return StepResult{}, err
	}
	if res.Skipped {
		return StepResult{Skipped: true, Note: res.Reason}, nil
	}
	return StepResult{Note: "Site built successfully"}, nil
}
