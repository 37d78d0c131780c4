package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"Log ID", "Facility", "Target", "Type", "Attempt", "Status",
	"Records", "Lag (s)", "Started At", "Completed At", "Duration (s)",
	"Error", "Triggered By",
}

// ExportLogs renders the filtered operation log as an xlsx workbook and
// returns the file bytes with a timestamped filename.
func ExportLogs(ctx context.Context, repo OperationLogRepository, filter LogFilter) ([]byte, string, error) {
	logs, err := repo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sync Operations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, log := range logs {
		completed := ""
		if log.CompletedAt != nil {
			completed = log.CompletedAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			log.ID,
			log.SourceFacilityID,
			log.TargetID,
			string(log.Kind),
			log.Attempt,
			string(log.Status),
			log.RecordCount,
			log.LagSeconds,
			log.StartedAt.Format("2006-01-02 15:04:05"),
			completed,
			log.DurationSeconds,
			log.ErrorMessage,
			log.CreatedBy,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sync_operations_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}
