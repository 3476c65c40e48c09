package selection

import "github.com/backmassage/convert2qt/internal/language"

// AudioMode decides what happens to audio streams that are not in the
// preferred language.
type AudioMode string

const (
	// AudioKeepOthers keeps the ranked primary stream followed by every
	// non-preferred-language stream in encounter order.
	AudioKeepOthers AudioMode = "keep-others"
	// AudioPrimaryOnly keeps the ranked primary stream only.
	AudioPrimaryOnly AudioMode = "primary-only"
)

// DefaultAudioPriority ranks surround codecs ahead of stereo ones. The list
// is data rather than logic because it has been reordered between releases.
var DefaultAudioPriority = []string{
	"dts",    // DTS
	"dca",    // DTS (older ffmpeg)
	"eac3",   // Dolby Digital Plus
	"ac3",    // Dolby Digital
	"alac",   // Apple lossless
	"flac",   // Free lossless
	"opus",   // Opus
	"aac",    // AAC
	"vorbis", // Ogg Vorbis
	"mp3",    // MP3
}

// Policy is the selection configuration. The zero value is not useful; start
// from DefaultPolicy.
type Policy struct {
	PreferredLanguage string
	AudioPriority     []string
	AudioMode         AudioMode
	// KeepDVDSubtitles exempts dvd_subtitle (VobSub) from the image
	// subtitle drop. The planner copies such streams unchanged.
	KeepDVDSubtitles bool
}

// DefaultPolicy returns the stock policy: English, DefaultAudioPriority,
// keep-others, image subtitles dropped.
func DefaultPolicy() Policy {
	return Policy{
		PreferredLanguage: language.English,
		AudioPriority:     append([]string(nil), DefaultAudioPriority...),
		AudioMode:         AudioKeepOthers,
	}
}
