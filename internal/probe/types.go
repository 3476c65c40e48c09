package probe

// Kind is the elementary stream type.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindSubtitle
)

// Specifier returns the ffmpeg stream specifier letter for k.
func (k Kind) Specifier() string {
	switch k {
	case KindVideo:
		return "v"
	case KindAudio:
		return "a"
	default:
		return "s"
	}
}

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "subtitle"
	}
}

// Stream holds one probed elementary stream. Fields that do not apply to
// the stream's kind are left zero.
type Stream struct {
	Kind      Kind
	KindIndex int // ordinal among streams of the same kind, probe order
	Codec     string

	// Video.
	Width       int
	Height      int
	AttachedPic bool

	// Audio.
	Channels int

	// Audio and subtitle. Title is empty when untagged.
	Language string
	Title    string

	// Subtitle.
	Forced          bool
	HearingImpaired bool
}

// FileProbe is the catalog of one input file. It is built once by Build
// and never modified afterwards.
type FileProbe struct {
	Filename        string
	DurationSeconds int
	Video           []Stream
	Audio           []Stream
	Subtitle        []Stream
}

// CatalogOptions controls what Build keeps.
type CatalogOptions struct {
	IncludeSubtitles bool
}
