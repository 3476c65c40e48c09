package selection

import (
	"strings"

	"github.com/backmassage/convert2qt/internal/probe"
)

// selectAudio ranks preferred-language streams by the policy's codec list.
// Entries are tried in priority order and the first stream carrying that
// codec wins. Without a ranked match the first stream is used so audio is
// never dropped entirely.
func selectAudio(streams []probe.Stream, p Policy) []probe.Stream {
	if len(streams) == 0 {
		return nil
	}

	primary, ok := rankAudio(streams, p)
	if !ok {
		primary = streams[0]
	}

	out := []probe.Stream{primary}
	if p.AudioMode == AudioPrimaryOnly {
		return out
	}
	for _, s := range streams {
		if s.KindIndex == primary.KindIndex || s.Language == p.PreferredLanguage {
			continue
		}
		out = append(out, s)
	}
	return out
}

func rankAudio(streams []probe.Stream, p Policy) (probe.Stream, bool) {
	for _, codec := range p.AudioPriority {
		codec = strings.ToLower(strings.TrimSpace(codec))
		for _, s := range streams {
			if s.Language == p.PreferredLanguage && s.Codec == codec {
				return s, true
			}
		}
	}
	return probe.Stream{}, false
}
