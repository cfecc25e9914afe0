package csvexport

import (
	"encoding/csv"
	"io"
	"time"

	"billdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the audit export header row. Order is part of the
// export contract consumed by the frontend.
var columns = []string{
	"Timestamp",
	"Action",
	"Performed By",
	"Verified By",
	"Report",
	"File",
	"IP Address",
	"User Agent",
}

// Writer wraps csv.Writer for exporting audit logs as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts a batch of audit log entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []domain.AuditLog) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func entryToRow(entry *domain.AuditLog) []string {
	row := make([]string, len(columns))
	row[0] = entry.Timestamp.Format(time.RFC3339)
	row[1] = string(entry.Action)
	row[2] = entry.PerformedBy.String()
	if entry.VerifiedBy != nil {
		row[3] = entry.VerifiedBy.String()
	}
	if entry.ReportID != nil {
		row[4] = entry.ReportID.String()
	}
	if entry.FileID != nil {
		row[5] = entry.FileID.String()
	}
	row[6] = entry.IPAddress
	row[7] = entry.UserAgent
	return row
}
