package grep

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// OpenLines opens path for line reading, transparently decompressing
// .gz and .zst files.
func OpenLines(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		return &layeredCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &layeredCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// layeredCloser closes a decompressor and the file under it.
type layeredCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredCloser) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
