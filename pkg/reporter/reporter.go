// Package reporter parses the reporter mini-protocol that streaming tasks
// emit on stderr to report counters and status messages out-of-band:
//
//	reporter:counter:<group>,<counter>,<amount>
//	reporter:status:<message>
//
// Lines that fail to match either directive exactly are never an error; they
// pass through verbatim for the caller's own inspection. Counter state is
// owned by the caller and can be threaded across repeated calls so that
// chunk-by-chunk parsing of a running task's output accumulates correctly.
package reporter

import (
	"context"
	"io"
	"regexp"
	"strconv"

	"jobsift/pkg/linestream"
)

var (
	counterRE = regexp.MustCompile(`^reporter:counter:([^,]*),([^,]*),(-?\d+)$`)
	statusRE  = regexp.MustCompile(`^reporter:status:(.*)$`)
)

// Counters accumulates counter totals by group and counter name.
type Counters map[string]map[string]int64

// Add adds amount to the named counter, creating the group and counter as
// needed. Negative amounts are valid.
func (c Counters) Add(group, counter string, amount int64) {
	g, ok := c[group]
	if !ok {
		g = make(map[string]int64)
		c[group] = g
	}
	g[counter] += amount
}

// Result holds everything extracted from a task's stderr. All three fields
// are always non-nil, even for empty input.
type Result struct {
	// Counters are the totals accumulated so far. When an accumulator was
	// passed to Parse, this is that same map, not a copy.
	Counters Counters `json:"counters" yaml:"counters"`

	// Statuses are the status messages in input order, duplicates kept,
	// without line terminators.
	Statuses []string `json:"statuses" yaml:"statuses"`

	// Other are the unrecognized lines, verbatim and in input order.
	Other []string `json:"other" yaml:"other"`
}

// NewResult creates an empty Result around the given accumulator. A nil
// accumulator means a fresh one.
func NewResult(counters Counters) *Result {
	if counters == nil {
		counters = make(Counters)
	}
	return &Result{
		Counters: counters,
		Statuses: []string{},
		Other:    []string{},
	}
}

// A classifier inspects one line and either fully consumes it into the
// result (returning true) or declines it. Classifiers are tried in order;
// unclaimed lines fall through to Other.
type classifier func(line string, res *Result) bool

var classifiers = []classifier{
	classifyCounter,
	classifyStatus,
}

func classifyCounter(line string, res *Result) bool {
	m := counterRE.FindStringSubmatch(linestream.TrimLineEnd(line))
	if m == nil {
		return false
	}
	amount, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		// Matched digits too large for int64; treat as garbled.
		return false
	}
	res.Counters.Add(m[1], m[2], amount)
	return true
}

func classifyStatus(line string, res *Result) bool {
	m := statusRE.FindStringSubmatch(linestream.TrimLineEnd(line))
	if m == nil {
		return false
	}
	res.Statuses = append(res.Statuses, m[1])
	return true
}

func classifyLine(line string, res *Result) {
	for _, classify := range classifiers {
		if classify(line, res) {
			return
		}
	}
	res.Other = append(res.Other, line)
}

// Parse reads every line from src and returns the extracted counters,
// statuses, and passthrough lines. If counters is non-nil it is mutated in
// place and referenced by the returned result, so repeated calls over
// successive chunks of output converge to the same totals as a single call
// over the whole stream. Malformed directives never fail; they land in
// Other verbatim.
func Parse(ctx context.Context, src linestream.Source, counters Counters) (*Result, error) {
	res := NewResult(counters)
	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		classifyLine(line, res)
	}
}

// ParseString parses a raw text blob. A trailing fragment without a newline
// is processed as a complete line.
func ParseString(s string, counters Counters) *Result {
	res := NewResult(counters)
	for _, line := range linestream.SplitKeepEnds(s) {
		classifyLine(line, res)
	}
	return res
}

// ParseBytes is ParseString for raw byte blobs.
func ParseBytes(b []byte, counters Counters) *Result {
	return ParseString(string(b), counters)
}
