// Package sink provides the export destinations. There are exactly two:
// a directory of loose files and a single zip archive. Both accept named
// byte streams and write them through without buffering whole payloads.
package sink

import "io"

// Sink accepts named byte streams. Create returns a handle for exactly
// one entry; the handle must be closed before the next Create for the
// archive variant, whose underlying format forbids interleaved entries.
// Close finalizes the destination and must be called once per run.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
	Close() error
}
