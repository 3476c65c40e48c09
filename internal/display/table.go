package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/backmassage/convert2qt/internal/planner"
	"github.com/backmassage/convert2qt/internal/probe"
)

// StreamTable renders every catalogued stream of fp with the output
// directives the plan derived from it. Streams without a directive are
// marked dropped. plan may be nil when planning failed.
func StreamTable(fp *probe.FileProbe, plan *planner.TranscodePlan) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stream", "Codec", "Details", "Lang", "Title", "Output"})

	for _, group := range [][]probe.Stream{fp.Video, fp.Audio, fp.Subtitle} {
		for _, s := range group {
			tw.AppendRow(table.Row{
				s.Kind.Specifier() + ":" + strconv.Itoa(s.KindIndex),
				s.Codec,
				streamDetails(s),
				s.Language,
				s.Title,
				outputs(plan, s),
			})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func streamDetails(s probe.Stream) string {
	switch s.Kind {
	case probe.KindVideo:
		d := fmt.Sprintf("%dx%d", s.Width, s.Height)
		if s.AttachedPic {
			d += " cover"
		}
		return d
	case probe.KindAudio:
		return fmt.Sprintf("%dch", s.Channels)
	default:
		var flags []string
		if s.Forced {
			flags = append(flags, "forced")
		}
		if s.HearingImpaired {
			flags = append(flags, "SDH")
		}
		return strings.Join(flags, ",")
	}
}

func outputs(plan *planner.TranscodePlan, s probe.Stream) string {
	if plan == nil {
		return "-"
	}
	var out []string
	for _, d := range plan.Directives {
		if d.Kind != s.Kind || d.SourceIndex != s.KindIndex {
			continue
		}
		desc := fmt.Sprintf("%s:%d %s", d.Kind.Specifier(), d.OutputIndex, d.Operation)
		if d.Operation == planner.OpEncode {
			desc += " " + d.Codec.Name
		}
		if d.Disposition == planner.DispositionDefault {
			desc += " (default)"
		}
		out = append(out, desc)
	}
	if len(out) == 0 {
		return "dropped"
	}
	return strings.Join(out, "\n")
}
