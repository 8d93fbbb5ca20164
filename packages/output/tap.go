package output

import (
	"fmt"
	"strings"

	"github.com/stepline/stepline/packages/core/engine"
	"github.com/stepline/stepline/packages/results"
)

type tapFormatter struct {
	opts options
}

func (f *tapFormatter) Format(doc *results.Document) error {
	w := f.opts.writer

	fmt.Fprintln(w, "TAP version 13")
	fmt.Fprintf(w, "1..%d\n", len(doc.Tests))

	for i, tr := range doc.Tests {
		n := i + 1
		title := tr.FullTitle
		if title == "" {
			title = tr.Name
		}

		switch tr.Status {
		case string(engine.StatusPassed):
			fmt.Fprintf(w, "ok %d - %s\n", n, title)
		case string(engine.StatusSkipped):
			reason := tr.Reason
			if reason == "" {
				reason = "skipped"
			}
			fmt.Fprintf(w, "ok %d - %s # SKIP %s\n", n, title, reason)
		default:
			fmt.Fprintf(w, "not ok %d - %s\n", n, title)
			if tr.Error != "" {
				fmt.Fprintln(w, "  ---")
				fmt.Fprintf(w, "  message: %s\n", strings.ReplaceAll(tr.Error, "\n", " "))
				fmt.Fprintf(w, "  priority: %s\n", tr.Priority)
				fmt.Fprintln(w, "  ...")
			}
		}
	}

	fmt.Fprintf(w, "# total %d, passed %d, failed %d, skipped %d\n",
		doc.Summary.Total, doc.Summary.Passed, doc.Summary.Failed, doc.Summary.Skipped)
	if doc.DependencySkips > 0 {
		fmt.Fprintf(w, "# %d skip(s) caused by failed dependencies\n", doc.DependencySkips)
	}
	return nil
}
