package reporter

import (
	"bytes"
	"strings"
)

// ChunkParser incrementally parses reporter output as it arrives, e.g. wired
// directly to a running task's stderr pipe. Unlike ParseString, a partial
// trailing line is held back until the rest of it arrives (or Flush is
// called), so directives split across chunk boundaries still parse.
//
// ChunkParser is not safe for concurrent use; the caller owns it and
// serializes writes.
type ChunkParser struct {
	res *Result
	buf bytes.Buffer
}

// NewChunkParser creates a ChunkParser merging into the given accumulator.
// A nil accumulator means a fresh one.
func NewChunkParser(counters Counters) *ChunkParser {
	return &ChunkParser{res: NewResult(counters)}
}

// Write consumes a chunk of raw output. Complete lines are classified
// immediately; a trailing fragment is buffered for the next Write. Write
// never fails; it implements io.Writer so the parser can sit behind an
// io.MultiWriter or io.Copy on a subprocess pipe.
func (p *ChunkParser) Write(b []byte) (int, error) {
	p.buf.Write(b)

	for {
		data := p.buf.String()
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			return len(b), nil
		}
		line := data[:i+1]
		p.buf.Next(i + 1)
		classifyLine(line, p.res)
	}
}

// Flush classifies any buffered trailing fragment as a final line. Call it
// once the producing process has exited.
func (p *ChunkParser) Flush() {
	if p.buf.Len() == 0 {
		return
	}
	line := p.buf.String()
	p.buf.Reset()
	classifyLine(line, p.res)
}

// Result returns the state accumulated so far. The returned value is live:
// later writes keep updating it.
func (p *ChunkParser) Result() *Result {
	return p.res
}
