package sink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/jgivc/flowexport/internal/common"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, snk Sink, name, content string) {
	t.Helper()

	w, err := snk.Create(name)
	require.NoError(t, err)

	_, err = io.Copy(w, bytes.NewReader([]byte(content)))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestDirSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0755))

	snk := NewDirSink(fs, "/out")

	writeEntry(t, snk, "a.tcx", "first")
	writeEntry(t, snk, "b.tcx", "second")
	require.NoError(t, snk.Close())

	data, err := afero.ReadFile(fs, "/out/a.tcx")
	require.NoError(t, err)
	require.Equal(t, "first", string(data))

	data, err = afero.ReadFile(fs, "/out/b.tcx")
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestDirSinkTruncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	snk := NewDirSink(fs, "")

	writeEntry(t, snk, "x.tcx", "a longer first payload")
	writeEntry(t, snk, "x.tcx", "short")

	data, err := afero.ReadFile(fs, "x.tcx")
	require.NoError(t, err)
	require.Equal(t, "short", string(data))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func TestZipSink(t *testing.T) {
	var buf bytes.Buffer
	snk := NewZipSink(nopWriteCloser{&buf})

	entries := map[string]string{}
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("2023-05-0%d-10_00_00.tcx", i+1)
		content := fmt.Sprintf("payload number %d", i)
		entries[name] = content

		writeEntry(t, snk, name, content)
	}

	require.NoError(t, snk.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, len(entries))

	seen := map[string]struct{}{}
	for _, f := range zr.File {
		_, dup := seen[f.Name]
		require.False(t, dup, "duplicate entry %s", f.Name)
		seen[f.Name] = struct{}{}

		expected, ok := entries[f.Name]
		require.True(t, ok, "unexpected entry %s", f.Name)
		require.EqualValues(t, len(expected), f.UncompressedSize64)

		rc, err := f.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		require.Equal(t, expected, string(data))
	}
}

func TestZipSinkEntryFinalizedByNextCreate(t *testing.T) {
	var buf bytes.Buffer
	snk := NewZipSink(nopWriteCloser{&buf})

	first, err := snk.Create("first.tcx")
	require.NoError(t, err)
	_, err = first.Write([]byte("one"))
	require.NoError(t, err)

	// Starting the next entry without closing the previous one must
	// seal it; a late write may not leak into the new entry.
	second, err := snk.Create("second.tcx")
	require.NoError(t, err)

	_, err = first.Write([]byte("late"))
	require.ErrorIs(t, err, common.ErrSinkClosed)

	_, err = second.Write([]byte("two"))
	require.NoError(t, err)
	require.NoError(t, second.Close())
	require.NoError(t, snk.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	require.EqualValues(t, 3, zr.File[0].UncompressedSize64)
	require.EqualValues(t, 3, zr.File[1].UncompressedSize64)
}

func TestZipSinkCreateAfterClose(t *testing.T) {
	var buf bytes.Buffer
	snk := NewZipSink(nopWriteCloser{&buf})

	require.NoError(t, snk.Close())
	require.NoError(t, snk.Close())

	_, err := snk.Create("x.tcx")
	require.ErrorIs(t, err, common.ErrSinkClosed)
}
