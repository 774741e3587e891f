package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"jobsift/pkg/diagnose"
)

func sampleResult() *diagnose.Result {
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return &diagnose.Result{
		Findings: []*diagnose.Finding{
			{
				Finder: diagnose.FinderPythonTraceback,
				Found:  true,
				Source: "task-attempts/attempt_0001/stderr",
				Lines: []string{
					"  File \"job.py\", line 12, in mapper\n",
					"TypeError: 'int' object is not iterable\n",
				},
			},
			{Finder: diagnose.FinderJavaStackTrace},
			{
				Finder:  diagnose.FinderStreamingError,
				Found:   true,
				Source:  "steps/1/syslog",
				Message: "Error launching job",
			},
		},
		Metadata: diagnose.Metadata{
			BaseDir:      "/tmp/job-logs",
			FilesScanned: 5,
			StartTime:    start,
			EndTime:      start.Add(120 * time.Millisecond),
		},
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport(sampleResult())

	if report.Summary.FindersRun != 3 {
		t.Errorf("FindersRun = %d, want 3", report.Summary.FindersRun)
	}
	if report.Summary.CausesFound != 2 {
		t.Errorf("CausesFound = %d, want 2", report.Summary.CausesFound)
	}
	if report.Summary.FilesScanned != 5 {
		t.Errorf("FilesScanned = %d, want 5", report.Summary.FilesScanned)
	}
	if !report.HasFindings() {
		t.Error("HasFindings() = false, want true")
	}
	if report.Metadata.Duration != 120*time.Millisecond {
		t.Errorf("Duration = %v, want 120ms", report.Metadata.Duration)
	}
}

func TestNewReport_Empty(t *testing.T) {
	report := NewReport(&diagnose.Result{
		Findings: []*diagnose.Finding{
			{Finder: diagnose.FinderPythonTraceback},
		},
	})

	if report.HasFindings() {
		t.Error("HasFindings() = true, want false")
	}
}

func TestTextFormatter(t *testing.T) {
	report := NewReport(sampleResult())

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"python traceback (task-attempts/attempt_0001/stderr):",
		"TypeError: 'int' object is not iterable",
		"java stack trace: not found",
		"Error launching job",
		"2 causes found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	report := NewReport(sampleResult())

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if got := buf.String(); got != "jobsift: 3 finders run, 2 causes found, 5 files scanned\n" {
		t.Errorf("quiet output = %q", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	report := NewReport(sampleResult())

	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.CausesFound != 2 {
		t.Errorf("round-tripped CausesFound = %d, want 2", decoded.Summary.CausesFound)
	}
	if len(decoded.Findings) != 3 {
		t.Errorf("round-tripped %d findings, want 3", len(decoded.Findings))
	}
}

func TestYAMLFormatter(t *testing.T) {
	report := NewReport(sampleResult())

	var buf bytes.Buffer
	f := NewYAMLFormatter(FormatOptions{})
	if err := f.Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Summary.FindersRun != 3 {
		t.Errorf("round-tripped FindersRun = %d, want 3", decoded.Summary.FindersRun)
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml"} {
		f, err := NewFormatter(name, FormatOptions{})
		if err != nil {
			t.Errorf("NewFormatter(%q) error = %v", name, err)
			continue
		}
		if f.Name() != name {
			t.Errorf("Name() = %q, want %q", f.Name(), name)
		}
	}

	if _, err := NewFormatter("xml", FormatOptions{}); err == nil {
		t.Error("NewFormatter(xml) error = nil, want unknown format error")
	}
}
