// Package scanner locates known failure signatures in job log streams.
//
// Each finder is a single forward pass over a linestream.Source. Absence of
// the target signature is reported as an empty result, never an error; the
// only errors surfaced are failures reading the underlying source. The
// multi-line finders work in two phases: an armed search for an exact start
// marker, then a bounded capture loop with an explicit stop predicate. Noise
// before the marker never starts a capture.
package scanner

import (
	"context"
	"io"

	"jobsift/pkg/linestream"
)

// advance reads the next line from src, reporting false at end of stream.
func advance(ctx context.Context, src linestream.Source) (string, bool, error) {
	line, err := src.Next(ctx)
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}
