package probe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/backmassage/convert2qt/internal/language"
)

// ErrMalformedProbeData is returned when ffprobe output lacks a field the
// catalog cannot do without (format.filename, a stream's codec_type).
var ErrMalformedProbeData = errors.New("malformed probe data")

// Build classifies raw streams by codec_type and assigns each kept stream
// its kind-relative index. Indices for a kind are 0..n-1 in encounter order
// regardless of how other kinds are interleaved.
func Build(raw *Raw, opts CatalogOptions) (*FileProbe, error) {
	if raw == nil || raw.Format == nil || raw.Format.Filename == nil {
		return nil, fmt.Errorf("%w: missing format.filename", ErrMalformedProbeData)
	}

	fp := &FileProbe{
		Filename:        *raw.Format.Filename,
		DurationSeconds: parseDuration(raw.Format.Duration),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType == nil {
			return nil, fmt.Errorf("%w: stream %d has no codec_type", ErrMalformedProbeData, s.Index)
		}
		switch strings.ToLower(*s.CodecType) {
		case "video":
			fp.Video = append(fp.Video, convertVideo(s, len(fp.Video)))
		case "audio":
			fp.Audio = append(fp.Audio, convertAudio(s, len(fp.Audio)))
		case "subtitle":
			if opts.IncludeSubtitles {
				fp.Subtitle = append(fp.Subtitle, convertSubtitle(s, len(fp.Subtitle)))
			}
		}
	}
	return fp, nil
}

func convertVideo(s *RawStream, idx int) Stream {
	return Stream{
		Kind:        KindVideo,
		KindIndex:   idx,
		Codec:       strings.ToLower(s.CodecName),
		Width:       s.Width,
		Height:      s.Height,
		AttachedPic: s.Disposition["attached_pic"] == 1,
	}
}

// Untagged or "und" audio stays undetermined so the selector can still fall
// back to it by position.
func convertAudio(s *RawStream, idx int) Stream {
	lang := language.Normalize(tag(s.Tags, "language"))
	if language.IsUndetermined(lang) {
		lang = language.Undetermined
	}
	return Stream{
		Kind:      KindAudio,
		KindIndex: idx,
		Codec:     strings.ToLower(s.CodecName),
		Channels:  s.Channels,
		Language:  lang,
		Title:     tag(s.Tags, "title"),
	}
}

// Untagged subtitles are assumed to be English.
func convertSubtitle(s *RawStream, idx int) Stream {
	lang := language.Normalize(tag(s.Tags, "language"))
	if lang == "" {
		lang = language.English
	}
	return Stream{
		Kind:            KindSubtitle,
		KindIndex:       idx,
		Codec:           strings.ToLower(s.CodecName),
		Language:        lang,
		Title:           tag(s.Tags, "title"),
		Forced:          s.Disposition["forced"] == 1,
		HearingImpaired: s.Disposition["hearing_impaired"] == 1,
	}
}

// tag looks key up case-insensitively; Matroska sources sometimes carry
// upper-case tag names.
func tag(tags map[string]string, key string) string {
	if v, ok := tags[key]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseDuration truncates ffprobe's fractional seconds. Missing, negative
// or unparsable values yield 0.
func parseDuration(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(f)
}
