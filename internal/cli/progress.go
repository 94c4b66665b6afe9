package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// scanProgress reports scan progress on stderr with a progress bar.
type scanProgress struct {
	quiet     bool
	out       io.Writer
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

func newScanProgress(quiet bool, out io.Writer) *scanProgress {
	return &scanProgress{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

func (p *scanProgress) OnDiscoveryComplete(files int) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "Inspecting %d Java files\n", files)

	p.fileBar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Inspecting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.out)
		}),
	)
}

func (p *scanProgress) OnFileProcessed() {
	if p.quiet || p.fileBar == nil {
		return
	}
	_ = p.fileBar.Add(1)
}

func (p *scanProgress) OnComplete(files, failed int) {
	if p.quiet {
		return
	}
	if p.fileBar != nil {
		_ = p.fileBar.Finish()
	}
	fmt.Fprintf(p.out, "✓ Inspected %d files (%d failed) in %s\n", files, failed, time.Since(p.startTime).Round(time.Millisecond))
}
