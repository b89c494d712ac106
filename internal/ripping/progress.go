package ripping

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"showbrake/internal/disc"
)

// scanProgress turns parser progress into a title counter on the terminal.
type scanProgress struct {
	out       io.Writer
	bar       *progressbar.ProgressBar
	useBar    bool
	announced bool
	finished  bool
}

func newScanProgress(out io.Writer, useBar bool) *scanProgress {
	return &scanProgress{out: out, useBar: useBar}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *scanProgress) update(update disc.ScanProgress) {
	if update.ExpectedTitles > 0 && !p.announced {
		p.announced = true
		plural := "s"
		if update.ExpectedTitles == 1 {
			plural = ""
		}
		fmt.Fprintf(p.out, "Scanning %d title%s...\n", update.ExpectedTitles, plural)
		if p.useBar {
			p.bar = progressbar.NewOptions(update.ExpectedTitles,
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionSetDescription("titles"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetPredictTime(false),
			)
		}
	}
	if p.bar != nil {
		_ = p.bar.Set(update.ScannedTitles)
	}
	if update.Complete {
		p.finish()
	}
}

func (p *scanProgress) finish() {
	if p.finished {
		return
	}
	p.finished = true
	if p.bar != nil {
		_ = p.bar.Finish()
		fmt.Fprintln(p.out)
	}
}
