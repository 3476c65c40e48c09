package display

import (
	"fmt"
	"io"

	"github.com/backmassage/convert2qt/internal/term"
)

// PrintBanner prints the name and version; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintf(w, "%sconvert2qt%s %s (QuickTime-compatible MP4 converter)\n", term.Magenta, term.NC, version)
}
