package ripping

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"showbrake/internal/disc"
)

// RenderBreakdown renders every title and chapter of d with its duration.
// The first column is the positional title number used in descriptors.
func RenderBreakdown(d *disc.Disc) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	keepCase(tw)
	tw.AppendHeader(table.Row{"#", "Title", "Chapter", "Duration", "Audio", "Subtitles"})

	for _, title := range d.Titles {
		tw.AppendRow(table.Row{
			strconv.Itoa(title.Position()),
			strconv.Itoa(title.Number),
			"",
			disc.FormatDuration(title.Duration()),
			strconv.Itoa(len(title.AudioTracks)),
			strconv.Itoa(len(title.SubtitleTracks)),
		})
		for _, chapter := range title.Chapters {
			tw.AppendRow(table.Row{"", "", strconv.Itoa(chapter.Number), disc.FormatDuration(chapter.Duration), "", ""})
		}
		tw.AppendSeparator()
	}
	tw.AppendFooter(table.Row{"", "", "Disc", disc.FormatDuration(d.Duration()), "", ""})
	tw.SetColumnConfigs(rightAligned(1, 2, 3, 4, 5, 6))
	return tw.Render()
}

// RenderPlan renders the planned episodes.
func RenderPlan(episodes []Episode) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	keepCase(tw)
	tw.AppendHeader(table.Row{"Episode", "Descriptor", "Title", "Chapters", "Duration", "File"})
	for _, ep := range episodes {
		chapters := ep.Descriptor.ChapterArg()
		if chapters == "" {
			chapters = "all"
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(ep.Number),
			ep.Descriptor.String(),
			strconv.Itoa(ep.Title.Number),
			chapters,
			disc.FormatDuration(ep.Duration()),
			ep.FileName,
		})
	}
	tw.SetColumnConfigs(rightAligned(1, 3, 5))
	return tw.Render()
}

func rightAligned(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, number := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignRight,
		})
	}
	return configs
}

// keepCase stops the style from upper-casing header and footer text, so
// durations keep their "1h 02m 03s" form.
func keepCase(tw table.Writer) {
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
}
