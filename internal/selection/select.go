package selection

import (
	"github.com/backmassage/convert2qt/internal/probe"
)

// Result is the outcome of Select. Video and Subtitle are nil when nothing
// qualifies; Audio is empty only when the file has no audio at all.
type Result struct {
	Video    *probe.Stream
	Audio    []probe.Stream
	Subtitle *probe.Stream
}

// HasVideo reports whether a video stream was selected.
func (r Result) HasVideo() bool { return r.Video != nil }

// HasAudio reports whether at least one audio stream was selected.
func (r Result) HasAudio() bool { return len(r.Audio) > 0 }

// Select applies p to fp. It never fails: missing kinds yield an empty
// selection for that kind.
func Select(fp *probe.FileProbe, p Policy) Result {
	if fp == nil {
		return Result{}
	}
	return Result{
		Video:    selectVideo(fp.Video),
		Audio:    selectAudio(fp.Audio, p),
		Subtitle: selectSubtitle(fp.Subtitle, p),
	}
}

// selectVideo returns the first stream that is real video. Cover art
// (attached pictures) is never chosen.
func selectVideo(streams []probe.Stream) *probe.Stream {
	for i := range streams {
		if !streams[i].AttachedPic {
			v := streams[i]
			return &v
		}
	}
	return nil
}
