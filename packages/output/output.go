package output

import (
	"fmt"
	"io"
	"os"

	"github.com/stepline/stepline/packages/results"
)

// Formatter renders one results document.
type Formatter interface {
	Format(doc *results.Document) error
}

// Names of the built-in formatters.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatJUnit   = "junit"
	FormatTAP     = "tap"
	FormatHTML    = "html"
)

type options struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

// Option configures a formatter.
type Option func(*options)

// WithWriter directs output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithVerbose includes per-priority timing detail where the format supports it.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithNoColor disables ANSI colors on the console formatter.
func WithNoColor(noColor bool) Option {
	return func(o *options) {
		o.noColor = noColor
	}
}

// New returns the formatter registered under name.
func New(name string, opts ...Option) (Formatter, error) {
	o := options{writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	switch name {
	case FormatConsole, "":
		return &consoleFormatter{opts: o}, nil
	case FormatJSON:
		return &jsonFormatter{opts: o}, nil
	case FormatJUnit:
		return &junitFormatter{opts: o}, nil
	case FormatTAP:
		return &tapFormatter{opts: o}, nil
	case FormatHTML:
		return &htmlFormatter{opts: o}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
