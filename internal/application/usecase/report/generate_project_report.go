// Package report contains the report generation use cases: window-scoped
// project and supplier exports rendered to Excel, PDF or ZIP.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerateProjectReportInput represents the input for a project report.
type GenerateProjectReportInput struct {
	ProjectID           uuid.UUID
	UserID              uuid.UUID
	Window              valueobject.WindowSpec
	Format              string
	IncludeTransactions bool
	IncludeBudgets      bool
	IncludeFund         bool
	IncludeDocuments    bool // ZIP only: bundle transaction documents
}

// GenerateProjectReportOutput carries the rendered report and the metadata
// the caller needs to build the response headers.
type GenerateProjectReportOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GenerateProjectReportUseCase assembles a project's financial data over a
// window and renders it in the requested format. Transactions of sub-projects
// roll up into their parent's report.
type GenerateProjectReportUseCase struct {
	projectRepo  adapter.ProjectRepository
	txRepo       adapter.TransactionRepository
	budgetRepo   adapter.BudgetRepository
	fundRepo     adapter.FundRepository
	categoryRepo adapter.CategoryRepository
	supplierRepo adapter.SupplierRepository
	renderers    map[adapter.ReportFormat]adapter.ReportRenderer
}

// NewGenerateProjectReportUseCase creates a new GenerateProjectReportUseCase instance.
func NewGenerateProjectReportUseCase(
	projectRepo adapter.ProjectRepository,
	txRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	fundRepo adapter.FundRepository,
	categoryRepo adapter.CategoryRepository,
	supplierRepo adapter.SupplierRepository,
	renderers map[adapter.ReportFormat]adapter.ReportRenderer,
) *GenerateProjectReportUseCase {
	return &GenerateProjectReportUseCase{
		projectRepo:  projectRepo,
		txRepo:       txRepo,
		budgetRepo:   budgetRepo,
		fundRepo:     fundRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		renderers:    renderers,
	}
}

// Execute generates the project report.
func (uc *GenerateProjectReportUseCase) Execute(ctx context.Context, input GenerateProjectReportInput) (*GenerateProjectReportOutput, error) {
	// 1. Resolve the output format
	format, err := parseFormat(input.Format)
	if err != nil {
		return nil, err
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportFormat,
			fmt.Sprintf("no renderer registered for format %q", format),
			domainerror.ErrInvalidReportFormat,
		)
	}

	// 2. Find project; hide foreign projects behind not-found
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

	// 3. Resolve the report window
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

	// 4. Load the transaction set, sub-projects included
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

	// 5. Resolve reference names and build the rows
	categoryNames, err := uc.loadCategoryNames(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	supplierNames, err := uc.loadSupplierNames(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	set := buildRows(transactions, window, categoryNames, supplierNames)

	data := &adapter.ReportData{
		Title:       "Project Report",
		SubjectName: project.Name,
		Window:      window,
		GeneratedAt: now,
		Income:      set.Income,
		Expense:     set.Expense,
		Exceptional: set.Exceptional,
	}
	if input.IncludeTransactions {
		data.Rows = set.Rows
	}

	// 6. Optional sections
	if input.IncludeBudgets {
		budgetRows, err := uc.loadBudgetRows(ctx, project.ID, input.UserID, transactions, categoryNames, now)
		if err != nil {
			return nil, err
		}
		data.Budgets = budgetRows
	}
	if input.IncludeFund && project.HasFund {
		fund, err := uc.fundRepo.FindByProject(ctx, project.ID)
		switch {
		case err == nil:
			balance := fund.Balance
			data.FundBalance = &balance
		case errors.Is(err, domainerror.ErrFundNotFound):
			// Fund enabled but never accrued; leave the section out.
		default:
			return nil, fmt.Errorf("failed to load fund: %w", err)
		}
	}
	if input.IncludeDocuments && format == adapter.ReportFormatZIP && len(set.TransactionIDs) > 0 {
		attachments, err := uc.loadAttachments(ctx, set.TransactionIDs)
		if err != nil {
			return nil, err
		}
		data.Attachments = attachments
	}

	// 7. Render
	content, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportRenderFailed,
			"failed to render report",
			err,
		)
	}

	return &GenerateProjectReportOutput{
		FileName:    reportFileName(project.Name, window, renderer.FileExtension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func (uc *GenerateProjectReportUseCase) loadCategoryNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (uc *GenerateProjectReportUseCase) loadSupplierNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	suppliers, err := uc.supplierRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	names := make(map[uuid.UUID]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (uc *GenerateProjectReportUseCase) loadBudgetRows(
	ctx context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
	transactions []*entity.Transaction,
	categoryNames map[uuid.UUID]string,
	now time.Time,
) ([]adapter.ReportBudgetRow, error) {
	budgets, err := uc.budgetRepo.FindByFilter(ctx, adapter.BudgetFilter{
		UserID:    userID,
		ProjectID: &projectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	rows := make([]adapter.ReportBudgetRow, 0, len(budgets))
	for _, budget := range budgets {
		progress := budget.ProgressFor(nil, transactions, now)
		rows = append(rows, adapter.ReportBudgetRow{
			Category:   categoryNames[budget.CategoryID],
			PeriodType: budget.PeriodType,
			Amount:     budget.Amount,
			Spent:      progress.Spent,
			Remaining:  progress.Remaining,
			OverBudget: progress.OverBudget,
		})
	}
	return rows, nil
}

func (uc *GenerateProjectReportUseCase) loadAttachments(ctx context.Context, transactionIDs []uuid.UUID) ([]adapter.ReportAttachment, error) {
	documents, err := uc.txRepo.FindDocumentsByTransactionIDs(ctx, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction documents: %w", err)
	}
	attachments := make([]adapter.ReportAttachment, 0, len(documents))
	for _, doc := range documents {
		attachments = append(attachments, adapter.ReportAttachment{
			FileName:   doc.FileName,
			StorageKey: doc.StorageKey,
		})
	}
	return attachments, nil
}

// rowSet carries report rows together with their aggregates.
type rowSet struct {
	Rows           []adapter.ReportRow
	TransactionIDs []uuid.UUID
	Income         decimal.Decimal
	Expense        decimal.Decimal
	Exceptional    decimal.Decimal
}

// buildRows turns the contributing transactions into report rows. Fund-paid
// and disjoint transactions are left out, matching the financial summary.
func buildRows(
	transactions []*entity.Transaction,
	window valueobject.Window,
	categoryNames map[uuid.UUID]string,
	supplierNames map[uuid.UUID]string,
) rowSet {
	set := rowSet{
		Income:      decimal.Zero,
		Expense:     decimal.Zero,
		Exceptional: decimal.Zero,
	}

	for _, tx := range transactions {
		contribution := tx.ContributionWithin(window.Start, window.End)
		if contribution.IsZero() {
			continue
		}

		row := adapter.ReportRow{
			Date:          tx.EffectiveDate(),
			PeriodStart:   tx.PeriodStart,
			PeriodEnd:     tx.PeriodEnd,
			Type:          tx.Type,
			Notes:         tx.Notes,
			Amount:        tx.Amount,
			Contribution:  contribution,
			IsExceptional: tx.IsExceptional,
		}
		if tx.CategoryID != nil {
			row.Category = categoryNames[*tx.CategoryID]
		}
		if tx.SupplierID != nil {
			row.Supplier = supplierNames[*tx.SupplierID]
		}
		set.Rows = append(set.Rows, row)
		set.TransactionIDs = append(set.TransactionIDs, tx.ID)

		switch tx.Type {
		case entity.TransactionTypeIncome:
			set.Income = set.Income.Add(contribution)
		case entity.TransactionTypeExpense:
			set.Expense = set.Expense.Add(contribution)
			if tx.IsExceptional {
				set.Exceptional = set.Exceptional.Add(contribution)
			}
		}
	}

	return set
}

// parseFormat normalizes and validates the requested report format.
func parseFormat(format string) (adapter.ReportFormat, error) {
	switch adapter.ReportFormat(strings.ToLower(strings.TrimSpace(format))) {
	case adapter.ReportFormatExcel:
		return adapter.ReportFormatExcel, nil
	case adapter.ReportFormatPDF:
		return adapter.ReportFormatPDF, nil
	case adapter.ReportFormatZIP:
		return adapter.ReportFormatZIP, nil
	default:
		return "", domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportFormat,
			"report format must be 'excel', 'pdf' or 'zip'",
			domainerror.ErrInvalidReportFormat,
		)
	}
}

// reportFileName derives the download filename: <subject>-<start>-<end>.<ext>
// with the subject slugged to filesystem-safe characters.
func reportFileName(subject string, window valueobject.Window, extension string) string {
	return fmt.Sprintf("%s-%s-%s.%s",
		slugify(subject),
		window.Start.Format("2006-01-02"),
		window.End.Format("2006-01-02"),
		extension,
	)
}

// slugify lowercases the name and collapses anything outside [a-z0-9] into
// single dashes.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true // Suppress a leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "report"
	}
	return slug
}
