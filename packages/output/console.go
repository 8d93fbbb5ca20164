package output

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/stepline/stepline/packages/core/engine"
	"github.com/stepline/stepline/packages/results"
)

type consoleFormatter struct {
	opts options
}

func (f *consoleFormatter) Format(doc *results.Document) error {
	green := f.paint(color.FgGreen)
	red := f.paint(color.FgRed)
	yellow := f.paint(color.FgYellow)
	cyan := f.paint(color.FgCyan)
	bold := f.paint(color.Bold)
	dim := f.paint(color.Faint)

	w := f.opts.writer

	header := doc.Suite
	if header == "" {
		header = "test run"
	}
	if doc.Environment != "" {
		header += " (" + doc.Environment + ")"
	}
	fmt.Fprintf(w, "\n%s\n", bold(header))
	fmt.Fprintf(w, "%s\n\n", dim(doc.RunID+"  "+doc.Time))

	for _, tr := range doc.Tests {
		title := tr.FullTitle
		if title == "" {
			title = tr.Name
		}

		switch tr.Status {
		case string(engine.StatusPassed):
			fmt.Fprintf(w, "  %s %s %s %s\n", green("✓"), title, cyan("["+tr.Priority+"]"), dim(fmt.Sprintf("%.0fms", tr.Duration)))
		case string(engine.StatusFailed):
			fmt.Fprintf(w, "  %s %s %s %s\n", red("✗"), title, cyan("["+tr.Priority+"]"), dim(fmt.Sprintf("%.0fms", tr.Duration)))
			if tr.Error != "" {
				fmt.Fprintf(w, "      %s\n", red(tr.Error))
			}
		case string(engine.StatusSkipped):
			line := fmt.Sprintf("  %s %s %s", yellow("-"), title, cyan("["+tr.Priority+"]"))
			if tr.Reason != "" {
				line += " " + yellow("(skipped: "+tr.Reason+")")
			}
			fmt.Fprintln(w, line)
		default:
			fmt.Fprintf(w, "  ? %s\n", title)
		}
	}

	s := doc.Summary
	fmt.Fprintf(w, "\n%s %d total, %s, %s, %s in %.0fms\n",
		bold("Summary:"), s.Total,
		green(fmt.Sprintf("%d passed", s.Passed)),
		red(fmt.Sprintf("%d failed", s.Failed)),
		yellow(fmt.Sprintf("%d skipped", s.Skipped)),
		doc.Duration)

	if doc.DependencySkips > 0 {
		fmt.Fprintf(w, "%s %d test(s) skipped because a dependency failed\n",
			yellow("Dependency skips:"), doc.DependencySkips)
	}

	if len(doc.Priorities) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("By priority"))
		fmt.Fprintf(w, "  %-10s %6s %7s %7s %8s\n", "priority", "total", "passed", "failed", "skipped")
		for _, p := range priorityOrder {
			stats, ok := doc.Priorities[p]
			if !ok || stats.Total == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-10s %6d %7d %7d %8d\n", p, stats.Total, stats.Passed, stats.Failed, stats.Skipped)
		}
	}

	if f.opts.verbose && len(doc.Timings) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Timings (ms)"))
		fmt.Fprintf(w, "  %-10s %6s %8s %8s %8s %8s\n", "band", "count", "p50", "p95", "p99", "max")
		for _, band := range timingOrder(doc.Timings) {
			t := doc.Timings[band]
			fmt.Fprintf(w, "  %-10s %6d %8.1f %8.1f %8.1f %8.1f\n", band, t.Count, t.P50Ms, t.P95Ms, t.P99Ms, t.MaxMs)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (f *consoleFormatter) paint(attr color.Attribute) func(a ...interface{}) string {
	c := color.New(attr)
	if f.opts.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.SprintFunc()
}

var priorityOrder = []string{
	string(engine.PriorityHighest),
	string(engine.PriorityHigh),
	string(engine.PriorityMedium),
	string(engine.PriorityLow),
}

// timingOrder lists bands with "all" first and the rest in priority order.
func timingOrder(timings map[string]results.Timing) []string {
	var bands []string
	if _, ok := timings["all"]; ok {
		bands = append(bands, "all")
	}
	for _, p := range priorityOrder {
		if _, ok := timings[p]; ok {
			bands = append(bands, p)
		}
	}
	// Anything unexpected still gets printed, after the known bands.
	var rest []string
	for band := range timings {
		if band == "all" || isKnownPriority(band) {
			continue
		}
		rest = append(rest, band)
	}
	sort.Strings(rest)
	return append(bands, rest...)
}

func isKnownPriority(band string) bool {
	for _, p := range priorityOrder {
		if band == p {
			return true
		}
	}
	return false
}
