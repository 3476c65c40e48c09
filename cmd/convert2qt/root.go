package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/convert2qt/internal/check"
	"github.com/backmassage/convert2qt/internal/config"
	"github.com/backmassage/convert2qt/internal/display"
	"github.com/backmassage/convert2qt/internal/logging"
	"github.com/backmassage/convert2qt/internal/pipeline"
)

// errFilesFailed ends a run in which at least one file failed. Each failure
// has already been logged.
var errFilesFailed = errors.New("one or more files failed")

// newRootCommand builds the convert2qt command. cfg holds defaults and the
// config file; flags are bound on top of it.
func newRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert2qt [flags] files...",
		Short: "Convert media files to QuickTime-compatible MP4",
		Long: "convert2qt probes each input, picks the video, audio and subtitle streams\n" +
			"worth keeping, and remuxes or transcodes them into an MP4 (or M4A) that\n" +
			"plays in QuickTime and on Apple devices. Directories are searched for\n" +
			"media files.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cfg.CheckOnly && len(args) == 0 {
				_ = cmd.Usage()
				return errors.New("no input files")
			}

			log, err := logging.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := cmd.Context()

			if cfg.CheckOnly {
				display.PrintBanner(os.Stderr, version)
				if !check.RunCheck(ctx, cfg, log) {
					return errFilesFailed
				}
				return nil
			}

			// Fail fast if the tools this mode needs are missing.
			if err := check.CheckDeps(cfg); err != nil {
				return err
			}

			if !cfg.Dump && !cfg.Info && !cfg.Streams {
				display.PrintBanner(os.Stderr, version)
				log.Debug(cfg.Logging.Verbose, "Run %s, output to %s", log.RunID(), cfg.Output.Dir)
			}

			stats := pipeline.Run(ctx, cfg, log, args)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if stats.ExitCode() != 0 {
				return errFilesFailed
			}
			return nil
		},
	}
	cmd.SetVersionTemplate("convert2qt {{.Version}}\n")
	config.BindFlags(cmd.Flags(), cfg)
	return cmd
}
