package scanner

import (
	"context"
	"regexp"

	"jobsift/pkg/linestream"
)

var streamingErrorRE = regexp.MustCompile(
	`^.*ERROR org\.apache\.hadoop\.streaming\.StreamJob \(main\): (.*)$`)

// The streaming driver logs this whenever a job fails, regardless of cause.
// It carries no diagnostic value, so it is skipped in favor of a later,
// more specific error.
const uninformativeError = "Job not Successful!"

// FindStreamingError scans step syslog for the first interesting error
// logged by the Hadoop streaming driver and returns the message with its
// log prefix stripped. Generic "Job not Successful!" notices are skipped.
// found is false when no qualifying line exists.
func FindStreamingError(ctx context.Context, src linestream.Source) (msg string, found bool, err error) {
	for {
		line, ok, err := advance(ctx, src)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		m := streamingErrorRE.FindStringSubmatch(linestream.TrimLineEnd(line))
		if m == nil {
			continue
		}
		if m[1] == uninformativeError {
			continue
		}
		return m[1], true, nil
	}
}
