package output

import (
	"encoding/json"

	"github.com/stepline/stepline/packages/results"
)

type jsonFormatter struct {
	opts options
}

func (f *jsonFormatter) Format(doc *results.Document) error {
	enc := json.NewEncoder(f.opts.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
