// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	requiredCommands := []string{
		"completion",
		"fetch",
		"generate",
		"help",
		"posts",
		"run",
		"sync",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
}

func TestWorkflowFlags(t *testing.T) {
	run := GetRunCmd()
	for _, flag := range []string{"dry-run", "skip-build", "config"} {
		if run.Flags().Lookup(flag) == nil {
			t.Errorf("run command is missing --%s", flag)
		}
	}

	if GetFetchCmd().Flags().Lookup("output") == nil {
		t.Error("fetch command is missing --output")
	}
	if GetGenerateCmd().Flags().Lookup("preview") == nil {
		t.Error("generate command is missing --preview")
	}
	if GetPostsCmd().Flags().Lookup("posts-dir") == nil {
		t.Error("posts command is missing --posts-dir")
	}
}
