package ffmpeg

import (
	"regexp"
	"strconv"
)

// ffmpeg reports position as time=HH:MM:SS.cc on its status line.
var reProgressTime = regexp.MustCompile(`time=(\d\d):(\d\d):(\d\d)`)

// ParseProgressLine extracts the elapsed output position in whole seconds.
// Lines without a timestamp return ok == false and should be ignored;
// malformed progress output is never an error.
func ParseProgressLine(line string) (seconds int, ok bool) {
	m := reProgressTime.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	return h*3600 + mi*60 + s, true
}

// Percent returns elapsed as a share of total, clamped to [0, 100]. An
// unknown total (<= 0) reports 0.
func Percent(elapsed, total int) float64 {
	if total <= 0 || elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) * 100 / float64(total)
	if p > 100 {
		return 100
	}
	return p
}
