package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/convert2qt/internal/config"
	"github.com/backmassage/convert2qt/internal/display"
	"github.com/backmassage/convert2qt/internal/ffmpeg"
	"github.com/backmassage/convert2qt/internal/logging"
	"github.com/backmassage/convert2qt/internal/naming"
	"github.com/backmassage/convert2qt/internal/planner"
	"github.com/backmassage/convert2qt/internal/probe"
	"github.com/backmassage/convert2qt/internal/selection"
)

// Destinations for inspection output and the progress bar. Tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run is the top-level batch entry point. It expands the input arguments,
// processes each file sequentially, and returns aggregate stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, args []string) RunStats {
	var stats RunStats

	files, errs := ExpandInputs(args)
	for _, err := range errs {
		log.Error("%v", err)
		stats.Failed++
	}
	if len(files) == 0 {
		if len(errs) == 0 {
			log.Warn("No media files found")
		}
		return stats
	}

	stats.Total = len(files)
	resolver := naming.NewCollisionResolver()
	resolver.Reserve(files)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(ctx, cfg, log, path, &stats, resolver)
	}

	if !inspecting(cfg) {
		logSummary(log, &stats)
	}
	return stats
}

// inspecting reports whether the run only prints information.
func inspecting(cfg *config.Config) bool {
	return cfg.Info || cfg.Streams || cfg.Dump
}

// processFile handles one input: probe -> select -> plan -> execute.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	path string,
	stats *RunStats,
	resolver *naming.CollisionResolver,
) {
	basename := filepath.Base(path)
	if !inspecting(cfg) {
		log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)
	}

	fi, err := os.Stat(path)
	if err != nil {
		log.Error("File not found: %s", path)
		stats.Failed++
		return
	}

	// --- Probe ---
	raw, err := probe.Run(ctx, cfg.Tools.FFprobe, path)
	if err != nil {
		log.Error("Cannot probe %s: %v", basename, err)
		stats.Failed++
		return
	}
	if cfg.Info {
		fmt.Fprintf(stdout, "%s\n", raw)
		stats.Inspected++
		return
	}
	fp, err := probe.ParseJSON(raw, cfg.CatalogOptions())
	if err != nil {
		log.Error("Cannot read probe data for %s: %v", basename, err)
		stats.Failed++
		return
	}

	// --- Select and plan ---
	sel := selection.Select(fp, cfg.Policy())
	plan, planErr := planner.Plan(sel, cfg.PlanOptions(path, fp.DurationSeconds))

	if cfg.Streams {
		fmt.Fprintf(stdout, "%s\n%s\n", path, display.StreamTable(fp, plan))
		if planErr != nil {
			log.Error("%v", planErr)
			stats.Failed++
			return
		}
		stats.Inspected++
		return
	}
	if planErr != nil {
		if errors.Is(planErr, planner.ErrUnsupportedInput) {
			log.Error("Nothing to convert in %s", basename)
		} else {
			log.Error("Cannot plan %s: %v", basename, planErr)
		}
		stats.Failed++
		return
	}

	outputPath := resolver.Resolve(path, plan.OutputPath())

	if cfg.Dump {
		fmt.Fprintln(stdout, ffmpeg.CommandLine(cfg.Tools.FFmpeg, ffmpeg.RenderTo(plan, outputPath)))
		stats.Inspected++
		return
	}

	log.Debug(cfg.Logging.Verbose, "Plan: %s", planner.Summary(plan))
	log.Info("  -> %s", outputPath)

	if err := execute(ctx, cfg, log, plan, outputPath); err != nil {
		stats.Failed++
		return
	}

	stats.TotalInputBytes += fi.Size()
	if ofi, err := os.Stat(outputPath); err == nil {
		stats.TotalOutputBytes += ofi.Size()
	}
	if plan.RemuxOnly {
		stats.Remuxed++
	} else {
		stats.Converted++
	}
}

// execute runs ffmpeg for plan, writing outputPath. With atomic output the
// encode goes to a partial file that is renamed into place on success; a
// failed run never leaves a partial file behind.
func execute(ctx context.Context, cfg *config.Config, log *logging.Logger, plan *planner.TranscodePlan, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return err
	}

	target := outputPath
	if cfg.Output.AtomicOutput {
		target = naming.PartialPath(outputPath)
	}
	args := ffmpeg.RenderTo(plan, target)
	log.Debug(cfg.Logging.Verbose, "Command: %s", ffmpeg.CommandLine(cfg.Tools.FFmpeg, args))

	bar := display.NewProgress(stderr, plan.DurationSeconds)
	start := time.Now()
	position := 0
	err := ffmpeg.Execute(ctx, cfg.Tools.FFmpeg, args, ffmpeg.ExecOptions{
		OnProgress: func(seconds int) {
			position = seconds
			bar.Update(seconds)
		},
		OnLine: func(line string) {
			log.Debug(cfg.Logging.Verbose, "ffmpeg: %s", line)
		},
	})
	if err != nil {
		bar.Abort()
		if cfg.Output.AtomicOutput {
			_ = os.Remove(target)
		}
		logExecError(log, cfg.Logging.Verbose, err)
		if note := stoppedAt(position, plan.DurationSeconds); note != "" {
			log.Warn("%s", note)
		}
		return err
	}
	bar.Finish()

	if target != outputPath {
		if err := os.Rename(target, outputPath); err != nil {
			_ = os.Remove(target)
			log.Error("Cannot move %s into place: %v", filepath.Base(outputPath), err)
			return err
		}
	}

	verb := "Converted"
	if plan.RemuxOnly {
		verb = "Remuxed"
	}
	log.Success("%s in %s", verb, display.FormatDuration(int(time.Since(start).Seconds())))
	return nil
}

func logExecError(log *logging.Logger, verbose bool, err error) {
	var exitErr *ffmpeg.ExitError
	switch {
	case errors.Is(err, ffmpeg.ErrBinaryNotFound):
		log.Error("ffmpeg not found; install it or set tools.ffmpeg")
	case errors.As(err, &exitErr):
		log.Error("%v", exitErr)
		if hint := exitErr.Hint(); hint != "" {
			log.Warn("Hint: %s", hint)
		}
		for _, line := range exitErr.Tail {
			log.Debug(verbose, "  %s", line)
		}
	default:
		log.Error("ffmpeg failed: %v", err)
	}
}

// stoppedAt describes how far a failed run got, or "" when the duration is
// unknown.
func stoppedAt(position, total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("Stopped at %.0f%% (%s of %s)",
		ffmpeg.Percent(position, total), display.FormatDuration(position), display.FormatDuration(total))
}

func logSummary(log *logging.Logger, stats *RunStats) {
	fmt.Fprintln(stderr)
	log.Info("Done: %d converted, %d remuxed, %d failed (of %d)",
		stats.Converted, stats.Remuxed, stats.Failed, stats.Total)
	if stats.Succeeded() == 0 {
		return
	}
	log.Info("Input: %s, output: %s (%s)",
		display.FormatBytes(stats.TotalInputBytes),
		display.FormatBytes(stats.TotalOutputBytes),
		display.FormatBytesWithSign(-stats.SpaceSaved()))
}
