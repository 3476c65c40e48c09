package planner

import (
	"github.com/backmassage/convert2qt/internal/probe"
	"github.com/backmassage/convert2qt/internal/selection"
)

// mov_text is the only text subtitle codec MP4 players read.
const subtitleEncoder = "mov_text"

// BuildSubtitleDirective plans the selected subtitle. VobSub is copied
// as-is; text formats are converted to mov_text. Language is always set to
// English since only English subtitles survive selection.
func BuildSubtitleDirective(s probe.Stream) Directive {
	d := Directive{
		Kind:        probe.KindSubtitle,
		OutputIndex: 0,
		SourceIndex: s.KindIndex,
		Metadata: []MetaPair{
			{Key: "language", Value: "eng"},
			{Key: "title", Value: "Subtitle Track"},
		},
	}
	if s.Codec == selection.DVDSubtitleCodec {
		d.Operation = OpCopy
		return d
	}
	d.Operation = OpEncode
	d.Codec = CodecParams{Name: subtitleEncoder}
	return d
}
