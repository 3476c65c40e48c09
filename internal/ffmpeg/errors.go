package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBinaryNotFound is returned when the ffmpeg executable cannot be started.
var ErrBinaryNotFound = errors.New("ffmpeg binary not found")

// ExitError reports a non-zero ffmpeg exit. Tail holds the last lines of
// combined output.
type ExitError struct {
	Code int
	Tail []string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with status %d", e.Code)
	if n := len(e.Tail); n > 0 {
		msg += ": " + e.Tail[n-1]
	}
	return msg
}

// Hint returns a short remedy for well-known failures, or "".
func (e *ExitError) Hint() string {
	return Diagnose(strings.Join(e.Tail, "\n"))
}

// Pre-compiled patterns for classifying ffmpeg output. Checked in order by
// Diagnose; the first match wins.
var diagnoses = []struct {
	re   *regexp.Regexp
	hint string
}{
	{
		regexp.MustCompile(`Unknown encoder '?(libx265|ac3|alac|aac)'?|Encoder not found`),
		"ffmpeg lacks a required encoder; run convert2qt --check",
	},
	{
		regexp.MustCompile(`(?i)Subtitle encoding currently only possible from text to text or bitmap to bitmap|` +
			`Error initializing output stream .*subtitle|` +
			`Could not find tag for codec .* in stream .*subtitle`),
		"subtitle stream cannot be converted to mov_text; retry without -s",
	},
	{
		regexp.MustCompile(`Too many packets buffered for output stream`),
		"mux queue overflow; the source has badly interleaved streams",
	},
	{
		regexp.MustCompile(`(?i)Non-monotonous DTS|non monotonically increasing dts|` +
			`DTS .*out of order|PTS .*out of order`),
		"source timestamps are damaged; remux it with mkvmerge first",
	},
	{
		regexp.MustCompile(`No space left on device`),
		"output volume is full",
	},
}

// Diagnose matches ffmpeg output against known failure patterns.
func Diagnose(output string) string {
	for _, d := range diagnoses {
		if d.re.MatchString(output) {
			return d.hint
		}
	}
	return ""
}
