// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workflow implements the blog update stages and their end-to-end
// orchestration: fetch commits, generate a post, sync the site config,
// process human posts, build the site, then advance the checkpoint.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bartekus/roboblog/internal/checkpoint"
	"github.com/bartekus/roboblog/internal/config"
)

// Deps carries the shared state injected into every step.
type Deps struct {
	Config      *config.Config
	CommitsPath string
	DryRun      bool
	SkipBuild   bool
}

// StepResult reports what one step did.
type StepResult struct {
	Note string
	// Halt stops the workflow cleanly: the run is complete, nothing further
	// to do (e.g. no new commits and no-update posts disabled).
	Halt bool
	// Skipped marks a soft-skipped step (missing optional tooling).
	Skipped bool
}

// Step is one stage of the update workflow.
type Step interface {
	Name() string
	Run(ctx context.Context, deps *Deps) (StepResult, error)
}

// Sequence executes steps in order, printing a banner per step. Unlike batch
// check runners, any step failure aborts immediately: a later stage must
// never run against a broken earlier artifact, and the checkpoint must not
// advance.
func Sequence(ctx context.Context, deps *Deps, steps []Step) error {
	total := len(steps)
	for i, step := range steps {
		fmt.Printf("\n[%d/%d] %s\n", i+1, total, step.Name())
		fmt.Println("============================================================")

		res, err := step.Run(ctx, deps)
		if err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
		if res.Note != "" {
			fmt.Println("  " + res.Note)
		}
		if res.Skipped {
			fmt.Printf("  SKIP: %s\n", step.Name())
			continue
		}
		if res.Halt {
			fmt.Println("\n============================================================")
			fmt.Println("Workflow complete (nothing further to do)")
			fmt.Println("============================================================")
			return nil
		}
	}

	fmt.Println("\n============================================================")
	fmt.Println("Workflow complete")
	fmt.Println("============================================================")
	return nil
}

// Run executes the steps and then advances the checkpoint. The write happens
// only after every executed step succeeded; a clean halt counts as success, a
// failed or dry run leaves the checkpoint file untouched.
func Run(ctx context.Context, deps *Deps, steps []Step, store *checkpoint.Store) error {
	if err := Sequence(ctx, deps, steps); err != nil {
		return err
	}
	if deps.DryRun {
		return nil
	}
	if err := store.Write(time.Now().UTC()); err != nil {
		return fmt.Errorf("updating checkpoint: %w", err)
	}
	return nil
}
