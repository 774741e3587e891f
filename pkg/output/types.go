// Package output provides formatting and output generation for diagnosis results.
package output

import (
	"time"

	"jobsift/pkg/diagnose"
)

// Report is the complete diagnosis output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Findings contains each finder's result.
	Findings []*diagnose.Finding `json:"findings" yaml:"findings"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// FindersRun is the number of finders that executed.
	FindersRun int `json:"finders_run" yaml:"finders_run"`

	// CausesFound is the number of finders that located their signature.
	CausesFound int `json:"causes_found" yaml:"causes_found"`

	// FilesScanned is the number of log files opened.
	FilesScanned int `json:"files_scanned" yaml:"files_scanned"`
}

// Metadata provides context about the diagnosis run.
type Metadata struct {
	// BaseDir is the log tree that was scanned.
	BaseDir string `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`

	// ScannedAt is when the diagnosis was performed.
	ScannedAt time.Time `json:"scanned_at" yaml:"scanned_at"`

	// Duration is how long the diagnosis took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewReport creates a Report from a diagnosis result.
func NewReport(result *diagnose.Result) *Report {
	causes := 0
	for _, f := range result.Findings {
		if f.Found {
			causes++
		}
	}

	return &Report{
		Findings: result.Findings,
		Summary: Summary{
			FindersRun:   len(result.Findings),
			CausesFound:  causes,
			FilesScanned: result.Metadata.FilesScanned,
		},
		Metadata: Metadata{
			BaseDir:   result.Metadata.BaseDir,
			ScannedAt: result.Metadata.EndTime,
			Duration:  result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}

// HasFindings returns true if any finder located its signature.
func (r *Report) HasFindings() bool {
	return r.Summary.CausesFound > 0
}
