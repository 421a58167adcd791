package report

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFormat(t *testing.T) {
	t.Run("accepts the three formats", func(t *testing.T) {
		for _, format := range []string{"excel", "pdf", "zip"} {
			got, err := parseFormat(format)
			if err != nil {
				t.Fatalf("parseFormat(%q) returned error: %v", format, err)
			}
			if string(got) != format {
				t.Errorf("parseFormat(%q) = %q", format, got)
			}
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		got, err := parseFormat("  Excel ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "excel" {
			t.Errorf("expected excel, got %q", got)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := parseFormat("csv")
		var reportErr *domainerror.ReportError
		if !errors.As(err, &reportErr) {
			t.Fatalf("expected ReportError, got %v", err)
		}
		if reportErr.Code != domainerror.ErrCodeInvalidReportFormat {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidReportFormat, reportErr.Code)
		}
	})
}

func TestReportFileName(t *testing.T) {
	window := valueobject.NewWindow(valueobject.WindowModeDateRange, date(2024, time.February, 1), date(2024, time.February, 29))

	t.Run("derives subject-start-end.ext", func(t *testing.T) {
		got := reportFileName("Beach House", window, "xlsx")
		want := "beach-house-2024-02-01-2024-02-29.xlsx"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("collapses special characters", func(t *testing.T) {
		got := reportFileName("Café & Rooms (2nd floor)", window, "pdf")
		want := "caf-rooms-2nd-floor-2024-02-01-2024-02-29.pdf"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("falls back when nothing survives the slug", func(t *testing.T) {
		got := reportFileName("???", window, "zip")
		want := "report-2024-02-01-2024-02-29.zip"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

func TestBuildRows(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	categoryID := uuid.New()
	supplierID := uuid.New()
	window := valueobject.NewWindow(valueobject.WindowModeDateRange, date(2024, time.February, 1), date(2024, time.February, 29))
	categoryNames := map[uuid.UUID]string{categoryID: "Utilities"}
	supplierNames := map[uuid.UUID]string{supplierID: "Acme Energy"}

	t.Run("aggregates contributing transactions", func(t *testing.T) {
		income := entity.NewTransaction(userID, projectID, entity.TransactionTypeIncome,
			decimal.NewFromInt(1200), date(2024, time.February, 10), nil, nil, "rent")
		expense := entity.NewTransaction(userID, projectID, entity.TransactionTypeExpense,
			decimal.NewFromInt(300), date(2024, time.February, 15), &categoryID, &supplierID, "power")
		expense.IsExceptional = true

		set := buildRows([]*entity.Transaction{income, expense}, window, categoryNames, supplierNames)

		if len(set.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(set.Rows))
		}
		if !set.Income.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected income 1200, got %s", set.Income)
		}
		if !set.Expense.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected expense 300, got %s", set.Expense)
		}
		if !set.Exceptional.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected exceptional 300, got %s", set.Exceptional)
		}
		if set.Rows[1].Category != "Utilities" || set.Rows[1].Supplier != "Acme Energy" {
			t.Errorf("expected resolved names, got %q / %q", set.Rows[1].Category, set.Rows[1].Supplier)
		}
		if len(set.TransactionIDs) != 2 {
			t.Errorf("expected 2 transaction ids, got %d", len(set.TransactionIDs))
		}
	})

	t.Run("pro-rates period transactions", func(t *testing.T) {
		// 910 over 91 days, 29 of them inside the window.
		tx := entity.NewPeriodTransaction(userID, projectID, entity.TransactionTypeExpense,
			decimal.NewFromInt(910), date(2024, time.January, 1), date(2024, time.March, 31), nil, nil, "quarterly bill")

		set := buildRows([]*entity.Transaction{tx}, window, categoryNames, supplierNames)

		if len(set.Rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(set.Rows))
		}
		want := decimal.NewFromInt(910).
			Mul(decimal.NewFromInt(29)).
			Div(decimal.NewFromInt(91))
		if !set.Rows[0].Contribution.Equal(want) {
			t.Errorf("expected contribution %s, got %s", want, set.Rows[0].Contribution)
		}
		if !set.Rows[0].Amount.Equal(decimal.NewFromInt(910)) {
			t.Errorf("expected full amount on the row, got %s", set.Rows[0].Amount)
		}
	})

	t.Run("skips fund-paid and disjoint transactions", func(t *testing.T) {
		fromFund := entity.NewTransaction(userID, projectID, entity.TransactionTypeExpense,
			decimal.NewFromInt(500), date(2024, time.February, 5), nil, nil, "")
		fromFund.FromFund = true
		outside := entity.NewTransaction(userID, projectID, entity.TransactionTypeExpense,
			decimal.NewFromInt(100), date(2024, time.March, 5), nil, nil, "")

		set := buildRows([]*entity.Transaction{fromFund, outside}, window, categoryNames, supplierNames)

		if len(set.Rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(set.Rows))
		}
		if !set.Expense.IsZero() {
			t.Errorf("expected zero expense, got %s", set.Expense)
		}
	})
}
