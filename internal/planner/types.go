package planner

import (
	"fmt"
	"strings"

	"github.com/backmassage/convert2qt/internal/naming"
	"github.com/backmassage/convert2qt/internal/probe"
)

// Operation is what a directive does with its source stream.
type Operation int

const (
	// OpMap routes the stream with no codec option; ffmpeg picks its
	// default encoder for the container.
	OpMap Operation = iota
	// OpCopy passes the stream through unchanged.
	OpCopy
	// OpEncode re-encodes the stream with the directive's codec params.
	OpEncode
)

func (o Operation) String() string {
	switch o {
	case OpMap:
		return "map"
	case OpCopy:
		return "copy"
	case OpEncode:
		return "encode"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// Disposition values written with -disposition. The empty string leaves the
// source disposition untouched.
const (
	DispositionDefault = "default"
	DispositionNone    = "none"
)

// Output extensions.
const (
	ExtVideo = "mp4"
	ExtAudio = "m4a"
)

// ResolutionCap limits the output frame width.
type ResolutionCap int

const (
	ResolutionNone ResolutionCap = iota
	ResolutionP480
	ResolutionP720
)

// Width returns the scaled output width, or 0 for ResolutionNone.
func (r ResolutionCap) Width() int {
	switch r {
	case ResolutionP480:
		return 854
	case ResolutionP720:
		return 1280
	default:
		return 0
	}
}

func (r ResolutionCap) String() string {
	switch r {
	case ResolutionP480:
		return "480p"
	case ResolutionP720:
		return "720p"
	default:
		return "none"
	}
}

// ParseResolutionCap accepts "none", "480", "480p", "720" and "720p".
func ParseResolutionCap(s string) (ResolutionCap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ResolutionNone, nil
	case "480", "480p":
		return ResolutionP480, nil
	case "720", "720p":
		return ResolutionP720, nil
	}
	return ResolutionNone, fmt.Errorf("invalid resolution cap %q (want none, 480p or 720p)", s)
}

// CodecParams holds the encoder settings of an OpEncode directive. Zero
// values are not rendered. Copy directives only use Tag.
type CodecParams struct {
	Name       string // encoder: "libx265", "aac", "ac3", "alac", "mov_text"
	Bitrate    string // e.g. "160k"
	SampleRate int    // Hz
	Channels   int
	Tag        string // codec tag, e.g. "hvc1"
	Preset     string
	Profile    string
	CRF        int
	Threads    string // "0" lets the encoder use every core
}

// MetaPair is one stream metadata assignment.
type MetaPair struct {
	Key   string
	Value string
}

// Directive describes one output stream. OutputIndex is assigned once by
// Plan and is the position the renderer uses in per-stream specifiers
// (-codec:a:<OutputIndex>). SourceIndex is the kind-relative input index.
type Directive struct {
	Kind        probe.Kind
	OutputIndex int
	SourceIndex int
	Operation   Operation
	Codec       CodecParams
	Metadata    []MetaPair
	Disposition string
	Filters     []string
}

// Title returns the title metadata value, if set.
func (d Directive) Title() string {
	for _, m := range d.Metadata {
		if m.Key == "title" {
			return m.Value
		}
	}
	return ""
}

// GlobalOpts are container-level options rendered before the map block.
type GlobalOpts struct {
	DropChapters       bool
	DropFormatMetadata bool
}

// TranscodePlan is the complete set of decisions for one input file. It is
// built by Plan and consumed by the ffmpeg renderer.
type TranscodePlan struct {
	InputPath       string
	Directives      []Directive
	Global          GlobalOpts
	OutputDir       string
	OutputExtension string
	// RemuxOnly is true when no directive encodes.
	RemuxOnly bool
	// DurationSeconds is the progress total declared for this plan.
	DurationSeconds int
}

// OutputPath is <OutputDir>/<input stem>.<OutputExtension>.
func (p *TranscodePlan) OutputPath() string {
	return naming.OutputPath(p.InputPath, p.OutputDir, p.OutputExtension)
}

// ByKind returns the directives of kind k in output order.
func (p *TranscodePlan) ByKind(k probe.Kind) []Directive {
	var out []Directive
	for _, d := range p.Directives {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Options are the per-run planning inputs.
type Options struct {
	InputPath       string
	DurationSeconds int
	ResolutionCap   ResolutionCap
	// IncludeSubtitles must match the catalog option; a selected subtitle
	// is ignored without it.
	IncludeSubtitles bool
	// AudioOnlyExtensions force the audio-only branch regardless of any
	// video stream (cover art in FLAC, MP3 and AIFF files). Lowercase, with
	// leading dot.
	AudioOnlyExtensions []string
	// OutputDir defaults to the current directory when empty.
	OutputDir string
}

// DefaultAudioOnlyExtensions is the stock audio container set.
var DefaultAudioOnlyExtensions = []string{".flac", ".mp3", ".aiff"}
