package selection

import (
	"strings"

	"github.com/backmassage/convert2qt/internal/probe"
)

// Image-based subtitle codecs the mov_text encoder cannot consume.
var imageSubtitleCodecs = map[string]bool{
	"hdmv_pgs_subtitle": true,
	"dvb_subtitle":      true,
	"dvd_subtitle":      true,
	"xsub":              true,
}

// DVDSubtitleCodec is ffmpeg's name for VobSub.
const DVDSubtitleCodec = "dvd_subtitle"

// subtitleFilter removes streams for which drop returns true. Filters run in
// a fixed order and only ever shrink the candidate set.
type subtitleFilter struct {
	name string
	drop func(probe.Stream, Policy) bool
}

var subtitleFilters = []subtitleFilter{
	{"language", func(s probe.Stream, p Policy) bool {
		return s.Language != p.PreferredLanguage
	}},
	{"image", func(s probe.Stream, p Policy) bool {
		if s.Codec == DVDSubtitleCodec && p.KeepDVDSubtitles {
			return false
		}
		return imageSubtitleCodecs[s.Codec]
	}},
	// "Signs & Songs" tracks are forced-only.
	{"signs", func(s probe.Stream, _ Policy) bool {
		return strings.Contains(strings.ToLower(s.Title), "sign")
	}},
}

// selectSubtitle runs the filters and picks the last survivor; the first
// subtitle track is conventionally the forced-only one.
func selectSubtitle(streams []probe.Stream, p Policy) *probe.Stream {
	candidates := FilterSubtitles(streams, p)
	if len(candidates) == 0 {
		return nil
	}
	last := candidates[len(candidates)-1]
	return &last
}

// FilterSubtitles returns the streams that survive every subtitle filter,
// in kind-index order.
func FilterSubtitles(streams []probe.Stream, p Policy) []probe.Stream {
	candidates := append([]probe.Stream(nil), streams...)
	for _, f := range subtitleFilters {
		kept := candidates[:0]
		for _, s := range candidates {
			if !f.drop(s, p) {
				kept = append(kept, s)
			}
		}
		candidates = kept
	}
	return candidates
}
