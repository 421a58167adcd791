// Package report implements the report renderers producing Excel, PDF and
// ZIP output from resolved report data.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/property-ledger/backend/internal/application/adapter"
)

const (
	summarySheet      = "Summary"
	transactionsSheet = "Transactions"
	budgetsSheet      = "Budgets"

	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout       = "2006-01-02"
)

// ExcelRenderer renders reports as xlsx workbooks.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// Render produces the workbook bytes: a summary sheet always, a transactions
// sheet when rows are present and a budgets sheet when budget lines are.
func (r *ExcelRenderer) Render(ctx context.Context, data *adapter.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, data); err != nil {
		return nil, err
	}

	if len(data.Rows) > 0 {
		if err := writeTransactionsSheet(f, data); err != nil {
			return nil, err
		}
	}
	if len(data.Budgets) > 0 {
		if err := writeBudgetsSheet(f, data); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the xlsx MIME type.
func (r *ExcelRenderer) ContentType() string {
	return excelContentType
}

// FileExtension returns "xlsx".
func (r *ExcelRenderer) FileExtension() string {
	return "xlsx"
}

func writeSummarySheet(f *excelize.File, data *adapter.ReportData) error {
	net := data.Income.Sub(data.Expense)

	rows := [][]interface{}{
		{data.Title, data.SubjectName},
		{"Period", fmt.Sprintf("%s to %s", data.Window.Start.Format(dateLayout), data.Window.End.Format(dateLayout))},
		{"Generated at", data.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{},
		{"Income", data.Income.InexactFloat64()},
		{"Expenses", data.Expense.InexactFloat64()},
		{"Net", net.InexactFloat64()},
		{"Exceptional expenses", data.Exceptional.InexactFloat64()},
	}
	if data.FundBalance != nil {
		rows = append(rows, []interface{}{"Fund balance", data.FundBalance.InexactFloat64()})
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return fmt.Errorf("failed to set summary cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size summary columns: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "B", 32)
}

func writeTransactionsSheet(f *excelize.File, data *adapter.ReportData) error {
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return fmt.Errorf("failed to create transactions sheet: %w", err)
	}

	headers := []interface{}{
		"Date", "Period start", "Period end", "Type", "Category",
		"Supplier", "Notes", "Amount", "Window share", "Exceptional",
	}
	if err := writeRow(f, transactionsSheet, 1, headers); err != nil {
		return err
	}

	for i, row := range data.Rows {
		periodStart, periodEnd := "", ""
		if row.PeriodStart != nil {
			periodStart = row.PeriodStart.Format(dateLayout)
		}
		if row.PeriodEnd != nil {
			periodEnd = row.PeriodEnd.Format(dateLayout)
		}
		exceptional := ""
		if row.IsExceptional {
			exceptional = "yes"
		}

		values := []interface{}{
			row.Date.Format(dateLayout),
			periodStart,
			periodEnd,
			string(row.Type),
			row.Category,
			row.Supplier,
			row.Notes,
			row.Amount.InexactFloat64(),
			row.Contribution.InexactFloat64(),
			exceptional,
		}
		if err := writeRow(f, transactionsSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(transactionsSheet, "A", "C", 13); err != nil {
		return fmt.Errorf("failed to size transaction columns: %w", err)
	}
	return f.SetColWidth(transactionsSheet, "E", "G", 24)
}

func writeBudgetsSheet(f *excelize.File, data *adapter.ReportData) error {
	if _, err := f.NewSheet(budgetsSheet); err != nil {
		return fmt.Errorf("failed to create budgets sheet: %w", err)
	}

	headers := []interface{}{"Category", "Period", "Budget", "Spent", "Remaining", "Over budget"}
	if err := writeRow(f, budgetsSheet, 1, headers); err != nil {
		return err
	}

	for i, row := range data.Budgets {
		over := ""
		if row.OverBudget {
			over = "yes"
		}
		values := []interface{}{
			row.Category,
			string(row.PeriodType),
			row.Amount.InexactFloat64(),
			row.Spent.InexactFloat64(),
			row.Remaining.InexactFloat64(),
			over,
		}
		if err := writeRow(f, budgetsSheet, i+2, values); err != nil {
			return err
		}
	}

	return f.SetColWidth(budgetsSheet, "A", "A", 24)
}

// writeRow sets one spreadsheet row starting at column A.
func writeRow(f *excelize.File, sheet string, rowNumber int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNumber)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s on %s: %w", cell, sheet, err)
		}
	}
	return nil
}

// Ensure ExcelRenderer implements adapter.ReportRenderer.
var _ adapter.ReportRenderer = (*ExcelRenderer)(nil)
