// Package summary contains the financial summary use case: window-scoped
// income and expense aggregation with day-based pro-ration.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GetFinancialSummaryInput represents the input for the financial summary.
type GetFinancialSummaryInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Window    valueobject.WindowSpec
}

// GetFinancialSummaryOutput represents the computed summary. Income carries
// the floor: max(accrued monthly income, recorded income). Net is left to
// callers.
type GetFinancialSummaryOutput struct {
	Window             valueobject.Window
	Income             decimal.Decimal
	Expense            decimal.Decimal
	RecordedIncome     decimal.Decimal
	AccruedIncome      decimal.Decimal
	ExceptionalExpense decimal.Decimal
	TransactionCount   int
}

// GetFinancialSummaryUseCase computes income/expense totals over a resolved
// window. Transactions of sub-projects roll up into their parent's summary.
type GetFinancialSummaryUseCase struct {
	projectRepo adapter.ProjectRepository
	txRepo      adapter.TransactionRepository
}

// NewGetFinancialSummaryUseCase creates a new GetFinancialSummaryUseCase instance.
func NewGetFinancialSummaryUseCase(
	projectRepo adapter.ProjectRepository,
	txRepo adapter.TransactionRepository,
) *GetFinancialSummaryUseCase {
	return &GetFinancialSummaryUseCase{
		projectRepo: projectRepo,
		txRepo:      txRepo,
	}
}

// Execute computes the financial summary.
func (uc *GetFinancialSummaryUseCase) Execute(ctx context.Context, input GetFinancialSummaryInput) (*GetFinancialSummaryOutput, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.UserID != input.UserID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}

	now := time.Now().UTC()
	window, err := valueobject.ResolveWindow(input.Window, project.StartDate, project.EndDate, now)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidReportWindow) {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeInvalidReportWindow,
				err.Error(),
				err,
			)
		}
		return nil, fmt.Errorf("failed to resolve window: %w", err)
	}

	projectIDs := []uuid.UUID{project.ID}
	if project.IsParent {
		subs, err := uc.projectRepo.FindSubProjects(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sub-projects: %w", err)
		}
		for _, sub := range subs {
			projectIDs = append(projectIDs, sub.ID)
		}
	}

	transactions, err := uc.txRepo.FindOverlappingWindow(ctx, projectIDs, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	output := Compute(project, transactions, window)
	return output, nil
}

// Compute aggregates a transaction set over a window. Fund-paid transactions
// contribute nothing; period transactions pro-rate linearly by day.
func Compute(project *entity.Project, transactions []*entity.Transaction, window valueobject.Window) *GetFinancialSummaryOutput {
	recordedIncome := decimal.Zero
	expense := decimal.Zero
	exceptional := decimal.Zero
	counted := 0

	for _, tx := range transactions {
		contribution := tx.ContributionWithin(window.Start, window.End)
		if contribution.IsZero() {
			continue
		}
		counted++
		switch tx.Type {
		case entity.TransactionTypeIncome:
			recordedIncome = recordedIncome.Add(contribution)
		case entity.TransactionTypeExpense:
			expense = expense.Add(contribution)
			if tx.IsExceptional {
				exceptional = exceptional.Add(contribution)
			}
		}
	}

	accrued := accrueMonthlyIncome(project, window)

	income := recordedIncome
	if accrued.GreaterThan(income) {
		income = accrued
	}

	return &GetFinancialSummaryOutput{
		Window:             window,
		Income:             income,
		Expense:            expense,
		RecordedIncome:     recordedIncome,
		AccruedIncome:      accrued,
		ExceptionalExpense: exceptional,
		TransactionCount:   counted,
	}
}

// accrueMonthlyIncome accrues the project's configured monthly income
// day-based over the window, month by calendar month: each month contributes
// monthly_budget x overlap_days / days_in_month. The accrual span is clipped
// to the contract when the project has dates, so open-ended windows do not
// accrue income the contract never covered.
func accrueMonthlyIncome(project *entity.Project, window valueobject.Window) decimal.Decimal {
	if !project.MonthlyBudget.IsPositive() {
		return decimal.Zero
	}

	start, end := window.Start, window.End
	if project.StartDate != nil {
		start = valueobject.MaxDate(start, valueobject.NormalizeDate(*project.StartDate))
	}
	if project.EndDate != nil {
		end = valueobject.MinDate(end, valueobject.NormalizeDate(*project.EndDate).AddDate(0, 0, -1))
	}
	if end.Before(start) {
		return decimal.Zero
	}

	total := decimal.Zero
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		monthStart, monthEnd := valueobject.MonthBounds(cursor)
		if overlap := valueobject.OverlapDays(monthStart, monthEnd, start, end); overlap > 0 {
			total = total.Add(project.MonthlyBudget.
				Mul(decimal.NewFromInt(int64(overlap))).
				Div(decimal.NewFromInt(int64(valueobject.DaysInMonth(cursor.Year(), cursor.Month())))))
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return total
}
