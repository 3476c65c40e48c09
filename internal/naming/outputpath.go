package naming

import (
	"path/filepath"
	"strings"
)

// partialMarker is inserted before the extension of in-progress outputs.
const partialMarker = ".partial"

// Stem is the input basename without its extension.
func Stem(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath builds <outputDir>/<input basename without extension>.<ext>.
// ext is given without the dot.
func OutputPath(input, outputDir, ext string) string {
	return filepath.Join(outputDir, Stem(input)+"."+ext)
}

// ArgSafe prefixes a relative path that starts with "-" with "./" so an
// external tool reads it as a file name, not an option.
func ArgSafe(path string) string {
	if strings.HasPrefix(path, "-") {
		return "." + string(filepath.Separator) + path
	}
	return path
}

// PartialPath returns the temporary path ffmpeg writes to before the
// result is renamed into place: "Movie.mp4" becomes "Movie.partial.mp4".
// The real extension stays last so ffmpeg still infers the container.
func PartialPath(final string) string {
	ext := filepath.Ext(final)
	return strings.TrimSuffix(final, ext) + partialMarker + ext
}

// IsPartial reports whether path looks like an abandoned partial output.
func IsPartial(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), partialMarker)
}
