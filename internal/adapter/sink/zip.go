package sink

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/jgivc/flowexport/internal/common"
)

type zipSink struct {
	out    io.WriteCloser
	zw     *zip.Writer
	entry  *zipEntry
	closed bool
}

// NewZipSink writes every entry into one zip archive backed by out. The
// archive writer allows only one open entry at a time: starting a new
// entry finalizes the previous one. Close flushes the central directory
// and closes out; entries written before a failed run stay readable.
func NewZipSink(out io.WriteCloser) Sink {
	return &zipSink{
		out: out,
		zw:  zip.NewWriter(out),
	}
}

func (s *zipSink) Create(name string) (io.WriteCloser, error) {
	if s.closed {
		return nil, common.ErrSinkClosed
	}

	if s.entry != nil {
		s.entry.done = true
	}

	w, err := s.zw.Create(name)
	if err != nil {
		return nil, fmt.Errorf("cannot create archive entry %s: %w", name, err)
	}

	s.entry = &zipEntry{w: w}

	return s.entry, nil
}

func (s *zipSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.entry != nil {
		s.entry.done = true
		s.entry = nil
	}

	if err := s.zw.Close(); err != nil {
		s.out.Close()

		return fmt.Errorf("cannot finalize archive: %w", err)
	}

	if err := s.out.Close(); err != nil {
		return fmt.Errorf("cannot close archive file: %w", err)
	}

	return nil
}

// zipEntry guards writes to the single open archive entry. Once the sink
// moves on to the next entry or closes, late writes fail instead of
// corrupting a neighbour entry.
type zipEntry struct {
	w    io.Writer
	done bool
}

func (e *zipEntry) Write(p []byte) (int, error) {
	if e.done {
		return 0, common.ErrSinkClosed
	}

	return e.w.Write(p)
}

func (e *zipEntry) Close() error {
	e.done = true

	return nil
}
