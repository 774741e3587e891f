package scanner

import (
	"context"
	"regexp"

	"jobsift/pkg/linestream"
)

// The task tracker logs this warning when a child task process dies with an
// uncaught error; the stack trace follows in subsequent syslog lines.
var (
	childErrorMarkerRE = regexp.MustCompile(
		`^.*WARN org\.apache\.hadoop\.mapred\.TaskTracker.*: Error running child$`)

	// Exception headline, e.g. "java.lang.OutOfMemoryError: Java heap space".
	javaExceptionRE = regexp.MustCompile(
		`^(?:[A-Za-z_$][\w$]*\.)+[A-Za-z_$][\w$]*(?:Exception|Error)(?::.*)?$`)

	// Indented stack frame, e.g. "        at org.apache.hadoop.mapred.ReduceTask.run(ReduceTask.java:277)".
	javaFrameRE = regexp.MustCompile(`^[ \t]+at \S.*$`)
)

// FindJavaStackTrace scans task-tracker syslog for the first Java stack
// trace following the "Error running child" warning, returning the exception
// headline and its frame lines. The warning line itself is excluded, as is
// the first line matching neither a frame nor a chained exception headline.
// Exception-looking lines before the warning are noise and are ignored.
// Returns nil if the warning never appears or no headline follows it.
func FindJavaStackTrace(ctx context.Context, src linestream.Source) ([]string, error) {
	// Armed phase: nothing counts until the child-error warning is seen.
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if childErrorMarkerRE.MatchString(linestream.TrimLineEnd(line)) {
			break
		}
	}

	// Find the headline. Unrelated syslog lines may sit between the warning
	// and the trace body.
	var trace []string
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if javaExceptionRE.MatchString(linestream.TrimLineEnd(line)) {
			trace = append(trace, line)
			break
		}
	}

	// Capture phase: frames and chained exception headlines continue the
	// trace; anything else ends it.
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return trace, nil
		}
		stripped := linestream.TrimLineEnd(line)
		if !javaFrameRE.MatchString(stripped) && !javaExceptionRE.MatchString(stripped) {
			return trace, nil
		}
		trace = append(trace, line)
	}
}
