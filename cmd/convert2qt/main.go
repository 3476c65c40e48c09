// Command convert2qt converts media files into QuickTime-compatible MP4
// (or M4A for audio-only sources) by planning and running ffmpeg.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/convert2qt/internal/config"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// The logger doesn't exist yet, so bootstrap errors go straight to stderr.
	cfg, _, _, err := config.Load(config.ConfigPathFromArgs(args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert2qt: %v\n", err)
		return 1
	}

	// SIGINT/SIGTERM cancel the context; the pipeline stops between files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(cfg)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFilesFailed) && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "convert2qt: %v\n", err)
		}
		return 1
	}
	return 0
}
