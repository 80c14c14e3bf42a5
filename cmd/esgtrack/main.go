// Package main provides the entry point for the esgtrack CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/verdantiq/esgtrack/internal/cli"
	"github.com/verdantiq/esgtrack/internal/errors"
)

// Build information, set at build time via ldflags.
//
//nolint:gochecknoglobals // Populated by the linker
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx := context.Background()
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}

	if err := cli.Execute(ctx, info); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		if action := errors.Actionable(err); action != "" {
			fmt.Fprintln(os.Stderr, "  "+action)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
}
