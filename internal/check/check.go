// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the encoders
// convert2qt plans for.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/convert2qt/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// RequiredEncoders are the ffmpeg encoders the planner may ask for.
var RequiredEncoders = []string{"libx265", "aac", "ac3", "alac", "mov_text"}

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the --check flow: ffmpeg and ffprobe versions, the
// required encoder list, and a short libx265 test encode. It reports
// everything it finds and returns false if anything required is missing.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkVersion(ctx, log, "ffmpeg", cfg.Tools.FFmpeg)
	ok = checkVersion(ctx, log, "ffprobe", cfg.Tools.FFprobe) && ok
	if _, err := exec.LookPath(cfg.Tools.FFmpeg); err != nil {
		return false
	}
	ok = checkEncoders(ctx, cfg, log) && ok
	ok = checkX265(ctx, cfg, log) && ok
	return ok
}

// checkVersion verifies a tool is on PATH and logs its version line.
func checkVersion(ctx context.Context, log Logger, name, binary string) bool {
	if _, err := exec.LookPath(binary); err != nil {
		log.Error("%s not found (%s)", name, binary)
		return false
	}
	out, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkEncoders lists ffmpeg's encoders and reports each required one.
func checkEncoders(ctx context.Context, cfg *config.Config, log Logger) bool {
	out, err := exec.CommandContext(ctx, cfg.Tools.FFmpeg, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}
	available := ParseEncoders(string(out))
	ok := true
	for _, name := range RequiredEncoders {
		if available[name] {
			log.Success("encoder %s", name)
		} else {
			log.Error("encoder %s missing", name)
			ok = false
		}
	}
	return ok
}

// checkX265 runs a minimal libx265 encode with the hvc1 tag into MP4.
func checkX265(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("Testing libx265...")
	if runSilent(ctx, cfg.Tools.FFmpeg, x265TestArgs()...) {
		log.Success("libx265 works")
		return true
	}
	log.Error("libx265 test encode failed")
	return false
}

// ParseEncoders extracts encoder names from `ffmpeg -encoders` output.
// Entry lines start with a six-character capability field such as
// "V....D"; the legend above the "------" separator is skipped.
func ParseEncoders(output string) map[string]bool {
	names := make(map[string]bool)
	started := false
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !started {
			started = strings.HasPrefix(fields[0], "---")
			continue
		}
		if len(fields) >= 2 && len(fields[0]) == 6 {
			names[fields[1]] = true
		}
	}
	return names
}

// CheckDeps is the pre-pipeline validation. ffprobe is always needed;
// ffmpeg only when files will be converted.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.Tools.FFprobe); err != nil {
		return fmt.Errorf("%w: %s", ErrFfprobeNotFound, cfg.Tools.FFprobe)
	}
	if cfg.Info || cfg.Streams || cfg.Dump {
		return nil
	}
	if _, err := exec.LookPath(cfg.Tools.FFmpeg); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.Tools.FFmpeg)
	}
	return nil
}

// --- internal helpers ---

// x265TestArgs returns the ffmpeg arguments for a minimal libx265 encode.
func x265TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx265", "-tag:v", "hvc1",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(ctx context.Context, name string, args ...string) bool {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
