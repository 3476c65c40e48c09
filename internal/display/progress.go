package display

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress is the per-file encode progress bar. Its total is the plan's
// declared duration; positions past the total are clamped.
type Progress struct {
	bar   *progressbar.ProgressBar
	total int
}

// NewProgress starts a bar on w. A total of 0 (unknown duration) shows a
// spinner instead.
func NewProgress(w io.Writer, totalSeconds int) *Progress {
	limit := totalSeconds + 1
	if totalSeconds <= 0 {
		limit = -1
	}
	bar := progressbar.NewOptions(limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Encoding Progress"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &Progress{bar: bar, total: totalSeconds}
}

// Update moves the bar to seconds of output written.
func (p *Progress) Update(seconds int) {
	if p.total > 0 && seconds > p.total {
		seconds = p.total
	}
	_ = p.bar.Set(seconds)
}

// Finish fills the bar and ends the line.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

// Abort leaves the bar where it stopped and ends the line.
func (p *Progress) Abort() {
	_ = p.bar.Exit()
}
