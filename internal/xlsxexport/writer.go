package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"billdesk/internal/domain"
)

var reportColumns = []string{
	"Report ID",
	"Title",
	"Description",
	"Amount",
	"Due Date",
	"Category",
	"Priority",
	"Status",
	"Approval Status",
	"Deletion State",
	"Created At",
}

// WriteReports renders reports as a single-sheet XLSX workbook.
func WriteReports(w io.Writer, reports []domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i := range reports {
		r := &reports[i]
		row := []interface{}{
			r.ReportID,
			r.Title,
			r.Description,
			r.Amount,
			formatDate(r.DueDate),
			string(r.Category),
			string(r.Priority),
			string(r.Status),
			string(r.ApprovalStatus),
			string(r.DeletionState),
			r.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("xlsx row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// BuildFilename returns the attachment name for an export:
// reports_{YYYY-MM-DD}.xlsx.
func BuildFilename() string {
	return fmt.Sprintf("reports_%s.xlsx", time.Now().Format("2006-01-02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
