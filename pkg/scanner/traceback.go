package scanner

import (
	"context"
	"strings"

	"jobsift/pkg/linestream"
)

// tracebackHeader announces a Python traceback in task stderr. Capture only
// arms on an exact match of the whole line; verbose interpreter output can
// quote this text mid-line without starting a real traceback.
const tracebackHeader = "Traceback (most recent call last):"

// FindPythonTraceback scans a log stream for the first Python traceback and
// returns its lines: the indented frame lines followed by the one-line
// exception summary. The header line itself is excluded. Returns nil if no
// traceback is found. If the stream ends before the summary line, the
// partial traceback collected so far is returned.
func FindPythonTraceback(ctx context.Context, src linestream.Source) ([]string, error) {
	// Armed phase: look for the exact header.
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if linestream.TrimLineEnd(line) == tracebackHeader {
			break
		}
	}

	// Capture phase: frame lines are indented; the first non-indented line
	// is the exception summary and terminates the traceback.
	var tb []string
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return tb, nil
		}
		tb = append(tb, line)
		if !strings.HasPrefix(line, " ") {
			return tb, nil
		}
	}
}
