package pagesim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sibexico/PageSim/paging"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// colorEnabled resolves the color mode for w. "auto" colors only terminals.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}

type renderer struct {
	w     io.Writer
	color bool
}

func newRenderer(w io.Writer, color bool) *renderer {
	return &renderer{w: w, color: color}
}

// renderTrace writes the reference string, one table per algorithm and a comparison
func (r *renderer) renderTrace(trace *paging.Trace) error {
	fmt.Fprintf(r.w, "Reference string: %s\n", joinPages(trace.Pages, " "))
	fmt.Fprintf(r.w, "Frames: %d\n", trace.Capacity)

	for _, alg := range trace.Report.Names() {
		if err := r.renderResult(trace.Report[alg]); err != nil {
			return err
		}
	}
	return r.renderSummary(trace)
}

func (r *renderer) renderResult(result *paging.Result) error {
	fmt.Fprintf(r.w, "\n== %s ==\n", result.Algorithm)

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Page\tFrames\tStatus\tEvicted")
	for _, step := range result.Steps {
		frames := "-"
		if len(step.Frames) > 0 {
			frames = joinPages(step.Frames, ", ")
		}
		evicted := ""
		if step.Evicted {
			evicted = fmt.Sprint(step.Victim)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", step.Page, frames, r.status(step.Status), evicted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(r.w, "Hits: %d | Faults: %d\n", result.Hits, result.Faults)
	return err
}

func (r *renderer) renderSummary(trace *paging.Trace) error {
	fmt.Fprintln(r.w, "\n== Summary ==")

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Algorithm\tHits\tFaults\tEvictions\tHit ratio")
	for _, s := range trace.Report.Summaries() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", s.Algorithm, s.Hits, s.Faults, s.Evictions, s.HitRatio*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	best := trace.Report.Best()
	names := make([]string, len(best))
	for i, alg := range best {
		names[i] = string(alg)
	}
	fmt.Fprintf(r.w, "Compulsory misses: %d\n", paging.DistinctPages(trace.Pages))
	_, err := fmt.Fprintf(r.w, "Fewest faults: %s\n", strings.Join(names, ", "))
	return err
}

func (r *renderer) status(s paging.Status) string {
	if !r.color {
		return s.String()
	}
	if s == paging.Hit {
		return ansiGreen + s.String() + ansiReset
	}
	return ansiRed + s.String() + ansiReset
}

func joinPages(pages []paging.Page, sep string) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(int(p))
	}
	return strings.Join(parts, sep)
}
