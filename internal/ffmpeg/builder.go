package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/convert2qt/internal/naming"
	"github.com/backmassage/convert2qt/internal/planner"
)

// muxQueueSize keeps ffmpeg from aborting on sparse subtitle or audio
// streams that lag behind video.
const muxQueueSize = "9999"

// Render returns the ffmpeg argument vector (without the binary) that
// executes plan, writing to plan.OutputPath().
func Render(plan *planner.TranscodePlan) []string {
	return RenderTo(plan, plan.OutputPath())
}

// RenderTo is Render with an explicit output path, used for collision
// suffixes and partial files.
//
// Layout:
//
//	-y -i <input> -max_muxing_queue_size 9999 [globals]
//	<map block: -map, -metadata:s, -disposition for every directive>
//	<codec block: -codec, encoder params, -filter for every directive>
//	<output>
//
// Every -map precedes every per-output-stream option.
func RenderTo(plan *planner.TranscodePlan, outputPath string) []string {
	args := make([]string, 0, 16+8*len(plan.Directives))

	// --- Input and globals ---
	args = append(args, "-y", "-i", naming.ArgSafe(plan.InputPath), "-max_muxing_queue_size", muxQueueSize)
	if plan.Global.DropChapters {
		args = append(args, "-map_chapters", "-1")
	}
	if plan.Global.DropFormatMetadata {
		args = append(args, "-map_metadata", "-1")
	}

	// --- Map block ---
	for _, d := range plan.Directives {
		args = appendMap(args, d)
	}

	// --- Codec block ---
	for _, d := range plan.Directives {
		args = appendCodec(args, d)
	}

	return append(args, naming.ArgSafe(outputPath))
}

// spec returns the output stream specifier, e.g. "a:1".
func spec(d planner.Directive) string {
	return d.Kind.Specifier() + ":" + strconv.Itoa(d.OutputIndex)
}

func appendMap(args []string, d planner.Directive) []string {
	args = append(args, "-map", fmt.Sprintf("0:%s:%d", d.Kind.Specifier(), d.SourceIndex))
	for _, m := range d.Metadata {
		args = append(args, "-metadata:s:"+spec(d), m.Key+"="+m.Value)
	}
	if d.Disposition != "" {
		args = append(args, "-disposition:"+spec(d), d.Disposition)
	}
	return args
}

func appendCodec(args []string, d planner.Directive) []string {
	s := spec(d)
	c := d.Codec

	switch d.Operation {
	case planner.OpMap:
		// ffmpeg chooses the encoder.
	case planner.OpCopy:
		args = append(args, "-codec:"+s, "copy")
	case planner.OpEncode:
		args = append(args, "-codec:"+s, c.Name)
	}
	if c.Tag != "" {
		args = append(args, "-tag:"+s, c.Tag)
	}
	if d.Operation != planner.OpEncode {
		return args
	}

	if c.Preset != "" {
		args = append(args, "-preset:"+s, c.Preset)
	}
	if c.Profile != "" {
		args = append(args, "-profile:"+s, c.Profile)
	}
	if c.CRF > 0 {
		args = append(args, "-crf:"+s, strconv.Itoa(c.CRF))
	}
	if c.Threads != "" {
		args = append(args, "-threads:"+s, c.Threads)
	}
	if c.SampleRate > 0 {
		args = append(args, "-ar:"+s, strconv.Itoa(c.SampleRate))
	}
	if c.Bitrate != "" {
		args = append(args, "-b:"+s, c.Bitrate)
	}
	if c.Channels > 0 {
		args = append(args, "-ac:"+s, strconv.Itoa(c.Channels))
	}
	if len(d.Filters) > 0 {
		args = append(args, "-filter:"+s, strings.Join(d.Filters, ","))
	}
	return args
}

// CommandLine joins binary and args into one line that can be pasted into
// a POSIX shell.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// shellQuote wraps s in single quotes unless it only contains characters
// that are safe unquoted.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !isShellSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./:=,+@%", r)
}
