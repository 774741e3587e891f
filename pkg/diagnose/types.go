// Package diagnose runs the failure scanners over a retrieved job log tree
// and collects what they found.
package diagnose

import "time"

// Finder names, used for filtering and in reports.
const (
	FinderPythonTraceback = "python_traceback"
	FinderJavaStackTrace  = "java_stack_trace"
	FinderStreamingError  = "streaming_error"
	FinderMapperInput     = "mapper_input"
)

// Finding is one scanner's result over its log kind.
type Finding struct {
	// Finder names the scanner that produced this finding.
	Finder string `json:"finder" yaml:"finder"`

	// Found reports whether the target signature occurred at all.
	Found bool `json:"found" yaml:"found"`

	// Source is the log file the finding came from, empty when not found.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Lines holds multi-line findings (tracebacks, stack traces).
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Message holds single-string findings (driver error, input URI).
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result contains the complete diagnosis output.
type Result struct {
	// Findings holds one entry per finder that ran, in a fixed order.
	Findings []*Finding

	// Metadata provides context about the run.
	Metadata Metadata
}

// Metadata provides context about a diagnosis run.
type Metadata struct {
	// BaseDir is the log tree the run scanned.
	BaseDir string

	// FilesScanned is the number of log files opened.
	FilesScanned int

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// CauseFound reports whether any finder located its signature.
func (r *Result) CauseFound() bool {
	for _, f := range r.Findings {
		if f.Found {
			return true
		}
	}
	return false
}
