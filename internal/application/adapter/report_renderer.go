// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// ReportFormat identifies the rendered output format.
type ReportFormat string

const (
	ReportFormatExcel ReportFormat = "excel"
	ReportFormatPDF   ReportFormat = "pdf"
	ReportFormatZIP   ReportFormat = "zip"
)

// ReportRow is one transaction line of a report, with references resolved to
// display strings and period transactions carrying their window contribution.
type ReportRow struct {
	Date          time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Type          entity.TransactionType
	Category      string
	Supplier      string
	Notes         string
	Amount        decimal.Decimal
	Contribution  decimal.Decimal // Pro-rated share inside the report window
	IsExceptional bool
}

// ReportBudgetRow is one budget line of a report.
type ReportBudgetRow struct {
	Category   string
	PeriodType entity.BudgetPeriodType
	Amount     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	OverBudget bool
}

// ReportAttachment is a stored document bundled into ZIP reports.
type ReportAttachment struct {
	FileName   string
	StorageKey string
}

// ReportData is the fully resolved content of a report, independent of the
// output format.
type ReportData struct {
	Title       string
	SubjectName string // Project or supplier name
	Window      valueobject.Window
	GeneratedAt time.Time
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Exceptional decimal.Decimal
	Rows        []ReportRow
	Budgets     []ReportBudgetRow
	FundBalance *decimal.Decimal
	Attachments []ReportAttachment
}

// ReportRenderer turns resolved report data into one output format.
type ReportRenderer interface {
	// Render produces the report bytes.
	Render(ctx context.Context, data *ReportData) ([]byte, error)

	// ContentType returns the MIME type of the rendered output.
	ContentType() string

	// FileExtension returns the filename extension without the dot.
	FileExtension() string
}
