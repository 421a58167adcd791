package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerateSupplierReportInput represents the input for a supplier report:
// the supplier's transactions across all projects over a window.
type GenerateSupplierReportInput struct {
	SupplierID       uuid.UUID
	UserID           uuid.UUID
	Window           valueobject.WindowSpec
	Format           string
	IncludeDocuments bool // ZIP only: bundle transaction documents
}

// GenerateSupplierReportOutput carries the rendered report and the metadata
// the caller needs to build the response headers.
type GenerateSupplierReportOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GenerateSupplierReportUseCase assembles a supplier's transaction history
// over a window and renders it in the requested format.
type GenerateSupplierReportUseCase struct {
	supplierRepo adapter.SupplierRepository
	txRepo       adapter.TransactionRepository
	categoryRepo adapter.CategoryRepository
	renderers    map[adapter.ReportFormat]adapter.ReportRenderer
}

// NewGenerateSupplierReportUseCase creates a new GenerateSupplierReportUseCase instance.
func NewGenerateSupplierReportUseCase(
	supplierRepo adapter.SupplierRepository,
	txRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	renderers map[adapter.ReportFormat]adapter.ReportRenderer,
) *GenerateSupplierReportUseCase {
	return &GenerateSupplierReportUseCase{
		supplierRepo: supplierRepo,
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		renderers:    renderers,
	}
}

// Execute generates the supplier report.
func (uc *GenerateSupplierReportUseCase) Execute(ctx context.Context, input GenerateSupplierReportInput) (*GenerateSupplierReportOutput, error) {
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

	// 2. Find supplier; hide foreign suppliers behind not-found
	supplier, err := uc.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSupplierNotFound) {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	if supplier.UserID != input.UserID {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeSupplierNotFound,
			"supplier not found",
			domainerror.ErrSupplierNotFound,
		)
	}

	// 3. Resolve the report window. Suppliers carry no contract dates, so
	// project mode degrades to the trailing year.
	now := time.Now().UTC()
	window, err := valueobject.ResolveWindow(input.Window, nil, nil, now)
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

	// 4. Load the supplier's transactions across all projects
	transactions, err := uc.txRepo.FindBySupplierWindow(ctx, supplier.ID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// 5. Build the rows
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	supplierNames := map[uuid.UUID]string{supplier.ID: supplier.Name}
	set := buildRows(transactions, window, categoryNames, supplierNames)

	data := &adapter.ReportData{
		Title:       "Supplier Report",
		SubjectName: supplier.Name,
		Window:      window,
		GeneratedAt: now,
		Income:      set.Income,
		Expense:     set.Expense,
		Exceptional: set.Exceptional,
		Rows:        set.Rows,
	}
	if input.IncludeDocuments && format == adapter.ReportFormatZIP && len(set.TransactionIDs) > 0 {
		documents, err := uc.txRepo.FindDocumentsByTransactionIDs(ctx, set.TransactionIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load transaction documents: %w", err)
		}
		for _, doc := range documents {
			data.Attachments = append(data.Attachments, adapter.ReportAttachment{
				FileName:   doc.FileName,
				StorageKey: doc.StorageKey,
			})
		}
	}

	// 6. Render
	content, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportRenderFailed,
			"failed to render report",
			err,
		)
	}

	return &GenerateSupplierReportOutput{
		FileName:    reportFileName(supplier.Name, window, renderer.FileExtension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}
