package config

// This file binds command-line flags onto a Config. Flags are grouped into
// output, streams, run mode and display. Values already present in cfg
// (defaults or the config file) become the flag defaults, so a flag only
// changes what the user actually passes.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/backmassage/convert2qt/internal/selection"
)

// BindFlags registers every convert2qt flag on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	defineOutputFlags(fs, cfg)
	defineStreamFlags(fs, cfg)
	defineModeFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
}

// defineOutputFlags registers -4/--480, -7/--720, -o/--output-dir.
func defineOutputFlags(fs *pflag.FlagSet, cfg *Config) {
	p480 := fs.VarPF(&resolutionFlag{p: &cfg.Output.Resolution, on: "480p"}, "480", "4", "Convert video to standard definition (480p)")
	p480.NoOptDefVal = "true"
	p720 := fs.VarPF(&resolutionFlag{p: &cfg.Output.Resolution, on: "720p"}, "720", "7", "Convert video to 720p HD")
	p720.NoOptDefVal = "true"
	fs.StringVarP(&cfg.Output.Dir, "output-dir", "o", cfg.Output.Dir, "Directory for converted files")
}

// defineStreamFlags registers -s/--subtitles, --keep-dvd-subs, --audio-mode.
func defineStreamFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Selection.Subtitles, "subtitles", "s", cfg.Selection.Subtitles, "Convert subtitles from the source file")
	fs.BoolVar(&cfg.Selection.KeepDVDSubtitles, "keep-dvd-subs", cfg.Selection.KeepDVDSubtitles, "Keep DVD (VobSub) subtitles instead of dropping them")
	fs.Var(&audioModeValue{&cfg.Selection.AudioMode}, "audio-mode", "Non-English audio: keep-others | primary-only")
}

// defineModeFlags registers -d/--dump, -i/--info, --streams, --check.
func defineModeFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Dump, "dump", "d", false, "Dump ffmpeg commands and exit")
	fs.BoolVarP(&cfg.Info, "info", "i", false, "Dump ffprobe output and exit")
	fs.BoolVar(&cfg.Streams, "streams", false, "Show streams and the selection, then exit")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Check ffmpeg, ffprobe and required encoders, then exit")
}

// defineDisplayFlags registers --color, --verbose, --log-file, --config.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&colorModeValue{&cfg.Logging.Color}, "color", "Colored output: auto | always | never")
	fs.BoolVar(&cfg.Logging.Verbose, "verbose", cfg.Logging.Verbose, "Verbose output (ffmpeg lines, plan details)")
	fs.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "Append logs to file")
	// Consumed by ConfigPathFromArgs before the config is loaded; registered
	// here for help output and so parsing accepts it.
	fs.String("config", "", "Config file (default "+DefaultPath+")")
}

// ConfigPathFromArgs pulls --config out of args without failing on the
// other flags, which are not registered yet.
func ConfigPathFromArgs(args []string) string {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	// -h and --help must not short-circuit the pre-parse.
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return *path
}

// pflag.Value adapters so enum types can be used with fs.Var.

// resolutionFlag is a boolean flag that selects one resolution. Both -4
// and -7 write the same target, so the last one given wins.
type resolutionFlag struct {
	p  *string
	on string
}

func (r *resolutionFlag) String() string { return strconv.FormatBool(*r.p == r.on) }
func (r *resolutionFlag) Type() string   { return "bool" }
func (r *resolutionFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q (use true or false)", s)
	}
	switch {
	case v:
		*r.p = r.on
	case *r.p == r.on:
		*r.p = "none"
	}
	return nil
}

type audioModeValue struct{ p *selection.AudioMode }

func (a *audioModeValue) String() string { return string(*a.p) }
func (a *audioModeValue) Type() string   { return "mode" }
func (a *audioModeValue) Set(s string) error {
	switch selection.AudioMode(strings.ToLower(s)) {
	case selection.AudioKeepOthers:
		*a.p = selection.AudioKeepOthers
	case selection.AudioPrimaryOnly:
		*a.p = selection.AudioPrimaryOnly
	default:
		return fmt.Errorf("invalid audio mode %q (use 'keep-others' or 'primary-only')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "when" }
func (c *colorModeValue) Set(s string) error {
	switch ColorMode(strings.ToLower(s)) {
	case ColorAuto:
		*c.p = ColorAuto
	case ColorAlways:
		*c.p = ColorAlways
	case ColorNever:
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
