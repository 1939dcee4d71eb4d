package sink

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

type dirSink struct {
	fs  afero.Fs
	dir string
}

// NewDirSink writes every entry as a file under dir. An existing file of
// the same name is truncated, not appended to.
func NewDirSink(fs afero.Fs, dir string) Sink {
	return &dirSink{
		fs:  fs,
		dir: dir,
	}
}

func (s *dirSink) Create(name string) (io.WriteCloser, error) {
	path := filepath.Join(s.dir, name)

	f, err := s.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create file %s: %w", path, err)
	}

	return f, nil
}

func (s *dirSink) Close() error {
	return nil
}
