package planner

import "github.com/backmassage/convert2qt/internal/probe"

// Fixed audio targets. QuickTime-class players need a stereo AAC first
// track; surround goes in a second AC3 track.
const (
	audioSampleRate = 48000

	stereoCodec    = "aac"
	stereoBitrate  = "160k"
	stereoChannels = 2

	surroundCodec    = "ac3"
	surroundBitrate  = "448k"
	surroundChannels = 6

	audioOnlyAACBitrate = "256k"

	stereoTitle   = "Stereo Track"
	surroundTitle = "Surround Track"
)

// BuildAudioDirectives plans the selected audio streams of a video file.
// Output indices run 0..n-1 in output order. When the first stream has
// more than two channels it produces two outputs: a stereo AAC downmix at
// index 0 and its surround form at index 1.
func BuildAudioDirectives(streams []probe.Stream) []Directive {
	var out []Directive
	idx := 0
	for _, s := range streams {
		if idx == 0 && s.Channels > stereoChannels {
			out = append(out, stereoEncode(s, idx))
			idx++
		}
		out = append(out, audioDirective(s, idx))
		idx++
	}
	return out
}

// audioDirective handles one stream at output index idx.
//
//   - >2 channels: ac3/eac3 copy, everything else encodes to 6ch AC3
//   - <=2 channels: aac copy, everything else encodes to stereo AAC
func audioDirective(s probe.Stream, idx int) Directive {
	if s.Channels > stereoChannels {
		switch s.Codec {
		case "ac3", "eac3":
			return audioCopy(s, idx)
		}
		return surroundEncode(s, idx)
	}
	if s.Codec == "aac" {
		return audioCopy(s, idx)
	}
	return stereoEncode(s, idx)
}

func stereoEncode(s probe.Stream, idx int) Directive {
	return Directive{
		Kind:        probe.KindAudio,
		OutputIndex: idx,
		SourceIndex: s.KindIndex,
		Operation:   OpEncode,
		Codec: CodecParams{
			Name:       stereoCodec,
			SampleRate: audioSampleRate,
			Bitrate:    stereoBitrate,
			Channels:   stereoChannels,
		},
		Metadata:    audioMetadata(stereoTitle, s.Language),
		Disposition: dispositionFor(idx),
	}
}

func surroundEncode(s probe.Stream, idx int) Directive {
	d := Directive{
		Kind:        probe.KindAudio,
		OutputIndex: idx,
		SourceIndex: s.KindIndex,
		Operation:   OpEncode,
		Codec: CodecParams{
			Name:       surroundCodec,
			SampleRate: audioSampleRate,
			Bitrate:    surroundBitrate,
			Channels:   surroundChannels,
		},
		Metadata:    audioMetadata(surroundTitle, s.Language),
		Disposition: dispositionFor(idx),
	}
	if s.Codec == "dca" {
		d.Filters = []string{dtsVolumeBoost}
	}
	return d
}

func audioCopy(s probe.Stream, idx int) Directive {
	title := stereoTitle
	if s.Channels > stereoChannels {
		title = surroundTitle
	}
	return Directive{
		Kind:        probe.KindAudio,
		OutputIndex: idx,
		SourceIndex: s.KindIndex,
		Operation:   OpCopy,
		Metadata:    audioMetadata(title, s.Language),
		Disposition: dispositionFor(idx),
	}
}

func audioMetadata(title, lang string) []MetaPair {
	return []MetaPair{
		{Key: "title", Value: title},
		{Key: "language", Value: lang},
	}
}

// BuildAudioOnlyDirective plans the single output stream of an audio-only
// file: alac is copied, flac and mp3 become alac, anything else becomes
// 256k AAC.
func BuildAudioOnlyDirective(s probe.Stream) Directive {
	d := Directive{
		Kind:        probe.KindAudio,
		OutputIndex: 0,
		SourceIndex: s.KindIndex,
	}
	switch s.Codec {
	case "alac":
		d.Operation = OpCopy
	case "flac", "mp3":
		d.Operation = OpEncode
		d.Codec = CodecParams{Name: "alac"}
	default:
		d.Operation = OpEncode
		d.Codec = CodecParams{
			Name:       stereoCodec,
			SampleRate: audioSampleRate,
			Bitrate:    audioOnlyAACBitrate,
		}
	}
	return d
}
