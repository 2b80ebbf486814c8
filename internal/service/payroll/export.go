package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Employee ID", "Employee Code", "Employee Name",
	"Base Pay", "Allowances", "Overtime Pay",
	"Deductions", "Lateness Deduction", "Correction",
	"Total", "Status", "Error",
}

// ExportXLSX writes the batch's lines as a spreadsheet. Error lines are
// included so reviewers see which employees still need attention.
func (s *BatchService) ExportXLSX(ctx context.Context, batchID string, w io.Writer) error {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	lines, err := s.lineRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("failed to list batch lines: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	title := fmt.Sprintf("Payroll %s to %s (%s)",
		batch.PeriodStart.Format("2006-01-02"),
		batch.PeriodEnd.Format("2006-01-02"),
		batch.Status,
	)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, line := range lines {
		row := i + 3
		values := []any{
			line.EmployeeID,
			derefOr(line.EmployeeCode, ""),
			derefOr(line.EmployeeName, ""),
			line.BasePay.InexactFloat64(),
			line.Allowances.InexactFloat64(),
			line.OvertimePay.InexactFloat64(),
			line.Deductions.InexactFloat64(),
			line.LatenessDeduction.InexactFloat64(),
			line.Correction.InexactFloat64(),
			line.Total.InexactFloat64(),
			string(line.Status),
			derefOr(line.ErrorKind, ""),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write line row: %w", err)
			}
		}
	}

	totalRow := len(lines) + 3
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("J%d", totalRow), batch.TotalAmount.InexactFloat64()); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
