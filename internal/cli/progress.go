package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// progress renders download progress. On a terminal it redraws one line per
// file; otherwise it prints a line every 10 percent.
type progress struct {
	w    io.Writer
	tty  bool
	last map[string]int64
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w, tty: isTerminal(w), last: make(map[string]int64)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Update is a retrieval.ProgressFunc.
func (p *progress) Update(filename string, done, total int64) {
	complete := total > 0 && done >= total
	if p.tty {
		fmt.Fprintf(p.w, "\r%s", formatProgress(filename, done, total))
		if complete {
			fmt.Fprintln(p.w)
		}
		return
	}

	if total <= 0 {
		return
	}
	step := done * 10 / total
	prev, seen := p.last[filename]
	if seen && step == prev {
		return
	}
	p.last[filename] = step
	fmt.Fprintln(p.w, formatProgress(filename, done, total))
}

func formatProgress(filename string, done, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%s  %s", filename, humanize.IBytes(uint64(done)))
	}
	pct := done * 100 / total
	return fmt.Sprintf("%s  %s / %s  %3d%%", filename,
		humanize.IBytes(uint64(done)), humanize.IBytes(uint64(total)), pct)
}
