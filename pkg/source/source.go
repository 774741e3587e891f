// Package source reads retrieved job log files as line streams. Log files
// pulled off a cluster frequently arrive compressed, so gzip and zstd files
// are decompressed transparently based on their extension.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"
)

// FileSource implements linestream.Source over one or more log files, read
// sequentially in the order given. Lines keep their terminators.
type FileSource struct {
	files []string

	currentFile   io.Closer
	currentReader *bufio.Reader
	currentSource string
	currentLine   int
	fileIndex     int
}

// New creates a FileSource over the given files. Files are not opened until
// the first call to Next.
func New(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next line, including its terminator. A file's final
// unterminated fragment is returned as a line. Returns io.EOF when all
// files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if s.currentReader == nil {
			if err := s.openNextFile(); err != nil {
				return "", err
			}
		}

		line, err := s.currentReader.ReadString('\n')
		if err == nil {
			s.currentLine++
			return line, nil
		}
		if err != io.EOF {
			return "", fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		if line != "" {
			s.currentLine++
			// EOF is reported on the next call, after the current file
			// has been closed.
			if cerr := s.closeCurrentFile(); cerr != nil {
				return "", cerr
			}
			return line, nil
		}

		if err := s.closeCurrentFile(); err != nil {
			return "", err
		}
	}
}

// CurrentSource returns the path of the file the last line came from.
func (s *FileSource) CurrentSource() string {
	return s.currentSource
}

// CurrentLine returns the 1-based line number of the last line within its file.
func (s *FileSource) CurrentLine() int {
	return s.currentLine
}

// Close releases any open file.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	rc, err := openReader(path)
	if err != nil {
		return err
	}

	s.currentFile = rc
	s.currentReader = bufio.NewReader(rc)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile == nil {
		return nil
	}
	err := s.currentFile.Close()
	s.currentFile = nil
	s.currentReader = nil
	if err != nil {
		return fmt.Errorf("closing %s: %w", s.currentSource, err)
	}
	return nil
}

// openReader opens a log file, wrapping it in a decompressor when the
// extension calls for one.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".gz":
		gz, err := newGzipReadCloser(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip log %s: %w", path, err)
		}
		return gz, nil
	case ".zst":
		return &zstdReadCloser{r: zstd.NewReader(f), f: f}, nil
	default:
		return f, nil
	}
}

// zstdReadCloser closes both the decompressor and the underlying file.
type zstdReadCloser struct {
	r io.ReadCloser
	f *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.r.Read(p)
}

func (z *zstdReadCloser) Close() error {
	err := z.r.Close()
	if ferr := z.f.Close(); err == nil {
		err = ferr
	}
	return err
}
