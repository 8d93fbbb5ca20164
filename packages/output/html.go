package output

import (
	"html/template"

	"github.com/stepline/stepline/packages/results"
)

type htmlFormatter struct {
	opts options
}

var priorityColors = map[string]string{
	"highest": "#dc3545",
	"high":    "#fd7e14",
	"medium":  "#ffc107",
	"low":     "#6c757d",
}

var statusColors = map[string]string{
	"passed":  "#28a745",
	"failed":  "#dc3545",
	"skipped": "#ffc107",
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"priorityColor": func(p string) string {
		if c, ok := priorityColors[p]; ok {
			return c
		}
		return "#6c757d"
	},
	"statusColor": func(s string) string {
		if c, ok := statusColors[s]; ok {
			return c
		}
		return "#6c757d"
	},
	"passRate": func(s results.Summary) float64 {
		if s.Total == 0 {
			return 0
		}
		return float64(s.Passed) / float64(s.Total) * 100
	},
}).Parse(htmlTemplate))

func (f *htmlFormatter) Format(doc *results.Document) error {
	return reportTemplate.Execute(f.opts.writer, doc)
}
