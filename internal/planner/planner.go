package planner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/convert2qt/internal/selection"
)

// ErrUnsupportedInput is returned when a selection has nothing to convert.
var ErrUnsupportedInput = errors.New("unsupported input")

// Plan turns a stream selection into a TranscodePlan. It is deterministic
// and does not touch the filesystem.
//
// Flow:
//  1. Audio-only branch (no video, or an audio container extension): one
//     audio directive, m4a output
//  2. Video branch: video directive, audio directives (stereo downmix first
//     when the primary is multichannel), optional subtitle directive
//  3. Output indices, dispositions and the remux flag are fixed here and
//     never recomputed downstream
func Plan(sel selection.Result, opts Options) (*TranscodePlan, error) {
	if !sel.HasVideo() && !sel.HasAudio() {
		return nil, fmt.Errorf("%s: %w: no audio or video stream", opts.InputPath, ErrUnsupportedInput)
	}

	ext := strings.ToLower(filepath.Ext(opts.InputPath))
	plan := &TranscodePlan{
		InputPath:       opts.InputPath,
		OutputDir:       opts.OutputDir,
		DurationSeconds: opts.DurationSeconds,
		Global:          GlobalOpts{DropChapters: true},
	}
	if plan.OutputDir == "" {
		plan.OutputDir = "."
	}

	// --- 1. Audio-only ---
	if !sel.HasVideo() || isAudioOnlyExt(ext, opts.AudioOnlyExtensions) {
		if !sel.HasAudio() {
			return nil, fmt.Errorf("%s: %w: audio container without audio", opts.InputPath, ErrUnsupportedInput)
		}
		plan.OutputExtension = ExtAudio
		plan.Directives = []Directive{BuildAudioOnlyDirective(sel.Audio[0])}
		plan.RemuxOnly = remuxOnly(plan.Directives)
		return plan, nil
	}

	// --- 2. Video ---
	plan.OutputExtension = ExtVideo
	video := BuildVideoDirective(*sel.Video, opts.ResolutionCap)
	if !sel.HasAudio() {
		// Source tags are kept when there is no audio, so the video stream
		// is not retitled either.
		video.Metadata = nil
	}
	plan.Directives = append(plan.Directives, video)
	plan.Directives = append(plan.Directives, BuildAudioDirectives(sel.Audio)...)
	if opts.IncludeSubtitles && sel.Subtitle != nil {
		plan.Directives = append(plan.Directives, BuildSubtitleDirective(*sel.Subtitle))
	}
	plan.Global.DropFormatMetadata = sel.HasAudio()

	// --- 3. Remux flag ---
	plan.RemuxOnly = remuxOnly(plan.Directives)
	return plan, nil
}

func isAudioOnlyExt(ext string, set []string) bool {
	if ext == "" {
		return false
	}
	for _, e := range set {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func remuxOnly(ds []Directive) bool {
	for _, d := range ds {
		if d.Operation == OpEncode {
			return false
		}
	}
	return true
}

// Summary is a one-line description of a plan for logs.
func Summary(p *TranscodePlan) string {
	var parts []string
	for _, d := range p.Directives {
		name := d.Codec.Name
		if d.Operation == OpCopy {
			name = "copy"
		}
		parts = append(parts, fmt.Sprintf("%s:%d<-%d %s", d.Kind.Specifier(), d.OutputIndex, d.SourceIndex, name))
	}
	mode := "encode"
	if p.RemuxOnly {
		mode = "remux"
	}
	return fmt.Sprintf("%s -> .%s [%s]", mode, p.OutputExtension, strings.Join(parts, ", "))
}

