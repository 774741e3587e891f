package source

import (
	"compress/gzip"
	"io"
	"os"
)

// gzipReadCloser closes both the gzip reader and the underlying file.
type gzipReadCloser struct {
	r *gzip.Reader
	f *os.File
}

func newGzipReadCloser(f *os.File) (io.ReadCloser, error) {
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	return &gzipReadCloser{r: r, f: f}, nil
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.r.Read(p)
}

func (g *gzipReadCloser) Close() error {
	err := g.r.Close()
	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	return err
}
