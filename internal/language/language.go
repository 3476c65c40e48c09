package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Undetermined is the ISO 639-2 code for "no language".
const Undetermined = "und"

// English is the ISO 639-2/T code for English.
const English = "eng"

// bibliographic maps ISO 639-2/B codes, which some muxers still write, onto
// their terminology equivalents.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

// Normalize lowercases tag and maps any recognized ISO 639-1 or 639-2 code,
// or a BCP 47 tag with region or script, to its ISO 639-2/T form ("en",
// "ENG" and "en-US" all become "eng"). Tags that are
// not a known language are returned lowercased and trimmed.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if t, ok := bibliographic[tag]; ok {
		return t
	}
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, conf := t.Base()
	if conf == language.No {
		return tag
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return tag
}

// IsUndetermined reports whether tag carries no usable language.
func IsUndetermined(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return tag == "" || tag == Undetermined
}
