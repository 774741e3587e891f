// Package linestream defines the line-oriented stream consumed by the
// scanners: an ordered, finite sequence of text lines, each keeping its
// trailing terminator when the origin had one.
package linestream

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Source provides sequential access to a stream of log lines.
// Implementations must be safe for sequential access (not concurrent).
type Source interface {
	// Next returns the next line, including its trailing terminator
	// if the origin had one. Returns io.EOF when exhausted.
	Next(ctx context.Context) (string, error)
}

// sliceSource iterates over an in-memory slice of lines.
type sliceSource struct {
	lines []string
	pos   int
}

// Lines creates a Source over an in-memory slice of lines. The lines are
// yielded exactly as given.
func Lines(lines []string) Source {
	return &sliceSource{lines: lines}
}

func (s *sliceSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// FromString creates a Source over a raw text blob, splitting it into lines
// that keep their terminators. A trailing fragment without a newline is
// yielded as a final line.
func FromString(s string) Source {
	return Lines(SplitKeepEnds(s))
}

// FromBytes is FromString for raw byte blobs.
func FromBytes(b []byte) Source {
	return FromString(string(b))
}

// readerSource reads lines from an io.Reader, preserving terminators.
type readerSource struct {
	br   *bufio.Reader
	done bool
}

// FromReader creates a Source that reads lines from r as they are consumed.
func FromReader(r io.Reader) Source {
	return &readerSource{br: bufio.NewReader(r)}
}

func (s *readerSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.done {
		return "", io.EOF
	}

	line, err := s.br.ReadString('\n')
	if err == io.EOF {
		s.done = true
		if line == "" {
			return "", io.EOF
		}
		// Final unterminated fragment still counts as a line.
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// SplitKeepEnds splits a blob after each newline, preserving each line's
// terminator. A trailing fragment without a newline becomes the final
// element. Returns nil for the empty string.
func SplitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
		if s == "" {
			break
		}
	}
	return lines
}

// TrimLineEnd strips one trailing newline, and a preceding carriage return
// if present, from a line. The rest of the line is untouched.
func TrimLineEnd(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
