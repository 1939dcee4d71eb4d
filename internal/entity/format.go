package entity

import (
	"fmt"
	"strings"
)

const (
	FormatTCX ExportFormat = iota
	FormatGPX
	FormatCSV
)

// ExportFormat is the closed set of payload formats the service can
// produce. The token doubles as the export URL path segment and the
// file extension; the payload bytes are passed through opaque either way.
type ExportFormat int

func (f ExportFormat) String() string {
	return [...]string{"tcx", "gpx", "csv"}[f]
}

func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "tcx":
		return FormatTCX, nil
	case "gpx":
		return FormatGPX, nil
	case "csv":
		return FormatCSV, nil
	}

	return 0, fmt.Errorf("unknown export format: %q", s)
}
