package output

import (
	"fmt"
	"io"
)

// Formatter renders diagnosis reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(report *Report, w io.Writer) error

	// Name returns the format name (text, json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose includes run metadata in the output.
	Verbose bool

	// Quiet reduces output to the summary.
	Quiet bool
}

// NewFormatter creates the formatter for the given format name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml":
		return NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, or yaml)", name)
	}
}
