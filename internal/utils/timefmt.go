package utils

import (
	"time"
)

const (
	snapshotTimestampLayout   = "2006-01-02_150405"
	exportFileTimestampLayout = "20060102_150405"
	exportHeaderLayout        = "2006-01-02 15:04:05"
)

// FormatSnapshotTimestamp renders a sortable, filesystem-safe timestamp in local time.
func FormatSnapshotTimestamp(value time.Time) string {
	return value.In(time.Local).Format(snapshotTimestampLayout)
}

// FormatExportFileTimestamp renders the timestamp embedded in default export file names.
func FormatExportFileTimestamp(value time.Time) string {
	return value.In(time.Local).Format(exportFileTimestampLayout)
}

// FormatExportHeaderTimestamp renders the generation time written into export headers.
func FormatExportHeaderTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(exportHeaderLayout)
}
