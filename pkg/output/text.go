package output

import (
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "jobsift: %d finders run, %d causes found, %d files scanned\n",
		report.Summary.FindersRun,
		report.Summary.CausesFound,
		report.Summary.FilesScanned)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Job Failure Diagnosis ===")
	fmt.Fprintln(w)

	for _, finding := range report.Findings {
		title := strings.ReplaceAll(finding.Finder, "_", " ")
		if !finding.Found {
			fmt.Fprintf(w, "%s: not found\n\n", title)
			continue
		}

		fmt.Fprintf(w, "%s (%s):\n", title, finding.Source)
		if finding.Message != "" {
			fmt.Fprintf(w, "  %s\n", finding.Message)
		}
		for _, line := range finding.Lines {
			fmt.Fprintf(w, "  %s", line)
			if !strings.HasSuffix(line, "\n") {
				fmt.Fprintln(w)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d finders run, %d causes found\n",
		report.Summary.FindersRun,
		report.Summary.CausesFound)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Files scanned: %d\n", report.Summary.FilesScanned)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
