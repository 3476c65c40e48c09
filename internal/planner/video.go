package planner

import "github.com/backmassage/convert2qt/internal/probe"

// Video encode settings. CRF 18 on the slow preset is close to visually
// lossless for HEVC.
const (
	videoEncoder       = "libx265"
	videoTag           = "hvc1"
	videoPreset        = "slow"
	videoCRF           = 18
	videoThreads       = "0"
	highProfileMinWide = 1000
)

// BuildVideoDirective decides copy or encode for the selected video stream.
//
//   - Any resolution cap forces an encode with a scale filter.
//   - hevc is copied and tagged hvc1 so Apple players accept it.
//   - h264 is copied.
//   - Everything else is encoded to HEVC.
func BuildVideoDirective(v probe.Stream, rc ResolutionCap) Directive {
	d := Directive{
		Kind:        probe.KindVideo,
		OutputIndex: 0,
		SourceIndex: v.KindIndex,
		Metadata: []MetaPair{
			{Key: "language", Value: "und"},
			{Key: "title", Value: "Video Track"},
		},
	}

	if rc == ResolutionNone {
		switch v.Codec {
		case "hevc":
			d.Operation = OpCopy
			d.Codec = CodecParams{Tag: videoTag}
			return d
		case "h264":
			d.Operation = OpCopy
			return d
		}
	}

	d.Operation = OpEncode
	d.Codec = CodecParams{
		Name:    videoEncoder,
		Tag:     videoTag,
		Preset:  videoPreset,
		Profile: videoProfile(v.Width),
		CRF:     videoCRF,
		Threads: videoThreads,
	}
	if f := BuildScaleFilter(rc); f != "" {
		d.Filters = append(d.Filters, f)
	}
	return d
}

func videoProfile(width int) string {
	if width > highProfileMinWide {
		return "high"
	}
	return "main"
}
