package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/convert2qt/internal/naming"
)

// Run executes ffprobe against path and returns its raw JSON output.
// The caller decides whether to print it (--info) or catalog it.
func Run(ctx context.Context, binary, path string) ([]byte, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		naming.ArgSafe(path),
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return out, nil
}

// Probe runs ffprobe and catalogs the result in one step.
func Probe(ctx context.Context, binary, path string, opts CatalogOptions) (*FileProbe, error) {
	out, err := Run(ctx, binary, path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(out, opts)
}

// ParseJSON decodes raw ffprobe JSON output and builds a FileProbe from it.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte, opts CatalogOptions) (*FileProbe, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProbeData, err)
	}
	return Build(&raw, opts)
}

// --- ffprobe JSON wire types ---

// Raw is the subset of ffprobe's -show_format -show_streams output the
// catalog reads. Required fields are pointers so absence can be detected.
type Raw struct {
	Format  *RawFormat  `json:"format"`
	Streams []RawStream `json:"streams"`
}

// RawFormat is ffprobe's format section.
type RawFormat struct {
	Filename *string `json:"filename"`
	Duration string  `json:"duration"`
}

// RawStream is one entry of ffprobe's streams array.
type RawStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   *string           `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Channels    int               `json:"channels"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}
