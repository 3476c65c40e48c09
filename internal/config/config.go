// Package config holds runtime configuration: defaults, the optional TOML
// file, CLI flag binding, and validation. Packages below cmd never read a
// Config directly; they receive the option structs built by CatalogOptions,
// Policy and PlanOptions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/backmassage/convert2qt/internal/language"
	"github.com/backmassage/convert2qt/internal/planner"
	"github.com/backmassage/convert2qt/internal/probe"
	"github.com/backmassage/convert2qt/internal/selection"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultPath is where Load looks when no --config is given.
const DefaultPath = "~/.config/convert2qt/config.toml"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by the TOML file and then by command-line flags.
type Config struct {
	Selection Selection `toml:"selection"`
	Output    Output    `toml:"output"`
	Tools     Tools     `toml:"tools"`
	Logging   Logging   `toml:"logging"`

	// Run mode (flags only).
	Dump      bool `toml:"-"` // Print ffmpeg command lines instead of running them.
	Info      bool `toml:"-"` // Print raw ffprobe JSON.
	Streams   bool `toml:"-"` // Print the stream/selection table.
	CheckOnly bool `toml:"-"` // Run --check diagnostics and exit.
}

// Selection configures stream choice.
type Selection struct {
	PreferredLanguage string              `toml:"preferred_language"` // Default: "eng".
	AudioPriority     []string            `toml:"audio_priority"`
	AudioMode         selection.AudioMode `toml:"audio_mode"`         // Default: keep-others.
	KeepDVDSubtitles  bool                `toml:"keep_dvd_subtitles"` // Default: false.
	Subtitles         bool                `toml:"subtitles"`          // Default: false. Set by -s.
}

// Output configures what gets written where.
type Output struct {
	Dir                 string   `toml:"dir"`        // Default: ".".
	Resolution          string   `toml:"resolution"` // none | 480p | 720p.
	AtomicOutput        bool     `toml:"atomic_output"`
	AudioOnlyExtensions []string `toml:"audio_only_extensions"`
}

// Tools names the external binaries.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging configures console and file output.
type Logging struct {
	File    string    `toml:"file"`
	Color   ColorMode `toml:"color"`
	Verbose bool      `toml:"verbose"`
}

// DefaultConfig returns a Config matching the historical convert2qt
// behavior: English, 10-codec audio priority, no subtitles, full
// resolution, output in the working directory.
func DefaultConfig() Config {
	return Config{
		Selection: Selection{
			PreferredLanguage: language.English,
			AudioPriority:     append([]string(nil), selection.DefaultAudioPriority...),
			AudioMode:         selection.AudioKeepOthers,
		},
		Output: Output{
			Dir:                 ".",
			Resolution:          planner.ResolutionNone.String(),
			AtomicOutput:        true,
			AudioOnlyExtensions: append([]string(nil), planner.DefaultAudioOnlyExtensions...),
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Logging: Logging{
			Color: ColorAuto,
		},
	}
}

// Load reads the TOML file at path over DefaultConfig. An empty path falls
// back to DefaultPath, which may be absent; an explicit path must exist. It
// returns the config, the resolved file path and whether the file existed.
// The result is not yet validated: flags are applied first.
func Load(path string) (*Config, string, bool, error) {
	cfg := DefaultConfig()

	resolved, exists, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}
	if !exists {
		return &cfg, resolved, false, nil
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, "", false, fmt.Errorf("parse config %s: %s", resolved, strict.String())
		}
		return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return &cfg, resolved, true, nil
}

func resolvePath(path string) (string, bool, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.IsDir():
		return "", false, fmt.Errorf("config %s is a directory", expanded)
	case err == nil:
		return expanded, true, nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return expanded, false, nil
	case errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("config file %s does not exist", expanded)
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and canonicalizes list values in place.
func (c *Config) Validate() error {
	switch c.Logging.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.Logging.Color)
	}

	switch c.Selection.AudioMode {
	case selection.AudioKeepOthers, selection.AudioPrimaryOnly:
	default:
		return fmt.Errorf("invalid audio mode %q (use 'keep-others' or 'primary-only')", c.Selection.AudioMode)
	}

	if _, err := planner.ParseResolutionCap(c.Output.Resolution); err != nil {
		return err
	}

	if strings.TrimSpace(c.Selection.PreferredLanguage) == "" {
		return errors.New("preferred language must not be empty")
	}
	c.Selection.PreferredLanguage = language.Normalize(c.Selection.PreferredLanguage)

	priority, err := normalizeCodecList(c.Selection.AudioPriority)
	if err != nil {
		return err
	}
	c.Selection.AudioPriority = priority

	c.Output.AudioOnlyExtensions = normalizeExtensions(c.Output.AudioOnlyExtensions)

	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = "."
	}
	c.Output.Dir = NormalizeDirArg(c.Output.Dir)
	if c.Output.Dir == "" {
		c.Output.Dir = "/"
	}

	if strings.TrimSpace(c.Tools.FFmpeg) == "" || strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("ffmpeg and ffprobe binaries must be named")
	}
	return nil
}

// normalizeCodecList lowercases, trims and de-duplicates codec names while
// keeping the first occurrence's position.
func normalizeCodecList(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("audio priority list must name at least one codec")
	}
	return out, nil
}

func normalizeExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// --- Conversions into per-stage options ---

// CatalogOptions returns the probe stage options.
func (c *Config) CatalogOptions() probe.CatalogOptions {
	return probe.CatalogOptions{IncludeSubtitles: c.Selection.Subtitles}
}

// Policy returns the selection policy.
func (c *Config) Policy() selection.Policy {
	return selection.Policy{
		PreferredLanguage: c.Selection.PreferredLanguage,
		AudioPriority:     append([]string(nil), c.Selection.AudioPriority...),
		AudioMode:         c.Selection.AudioMode,
		KeepDVDSubtitles:  c.Selection.KeepDVDSubtitles,
	}
}

// ResolutionCap returns the parsed output resolution. Validate has already
// rejected bad values, so errors map to ResolutionNone.
func (c *Config) ResolutionCap() planner.ResolutionCap {
	rc, _ := planner.ParseResolutionCap(c.Output.Resolution)
	return rc
}

// PlanOptions returns the planner options for one input file.
func (c *Config) PlanOptions(inputPath string, durationSeconds int) planner.Options {
	return planner.Options{
		InputPath:           inputPath,
		DurationSeconds:     durationSeconds,
		ResolutionCap:       c.ResolutionCap(),
		IncludeSubtitles:    c.Selection.Subtitles,
		AudioOnlyExtensions: append([]string(nil), c.Output.AudioOnlyExtensions...),
		OutputDir:           c.Output.Dir,
	}
}
