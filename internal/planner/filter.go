package planner

import "fmt"

// BuildScaleFilter returns the scale filter for a resolution cap, or "" for
// ResolutionNone. Height is derived from the aspect ratio and kept even, as
// libx265 requires with 4:2:0 chroma.
func BuildScaleFilter(r ResolutionCap) string {
	w := r.Width()
	if w == 0 {
		return ""
	}
	return fmt.Sprintf("scale=%d:-2", w)
}

// dtsVolumeBoost compensates for the quiet output of DTS decoded and
// re-encoded to AC3.
const dtsVolumeBoost = "volume=2.0"
