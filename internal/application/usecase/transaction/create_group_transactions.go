package transaction

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
)

// GroupFileInput references a staged upload to attach to a group row after
// its transaction is created.
type GroupFileInput struct {
	StagingKey string
	FileName   string
}

// GroupRowInput is one row of a group submission. Group rows are always
// dated; SubProjectID must be set when ProjectID names a parent project.
type GroupRowInput struct {
	ProjectID     uuid.UUID
	SubProjectID  *uuid.UUID
	Type          entity.TransactionType
	Amount        decimal.Decimal
	TxDate        *time.Time
	CategoryID    *uuid.UUID
	SupplierID    *uuid.UUID
	IsExceptional bool
	FromFund      bool
	Notes         string
	Files         []GroupFileInput
}

// CreateGroupTransactionsInput represents the input for a group submission.
type CreateGroupTransactionsInput struct {
	UserID uuid.UUID
	Rows   []GroupRowInput
}

// GroupFileError ties an attachment failure to its row and file. The row's
// transaction was created; only the attachment failed.
type GroupFileError struct {
	Row      int    `json:"row"`
	FileName string `json:"file_name"`
	Message  string `json:"message"`
}

// CreateGroupTransactionsOutput aggregates the outcome of a group
// submission. Partial is true when at least one row succeeded and at least
// one row or file failed.
type CreateGroupTransactionsOutput struct {
	GroupID       uuid.UUID
	CreatedIDs    []uuid.UUID
	CreatedCount  int
	FailedCount   int
	IncomeCount   int
	ExpenseCount  int
	IncomeTotal   decimal.Decimal
	ExpenseTotal  decimal.Decimal
	AttachedFiles int
	RowErrors     []domainerror.RowError
	FileErrors    []GroupFileError
	Partial       bool
}

// CreateGroupTransactionsUseCase creates N independent transactions from one
// submitted table. All rows are validated up front (collected, not
// short-circuited); any validation error aborts the whole submission. Rows
// that pass are then processed sequentially, since attachment linkage needs
// each created id and per-row outcomes must be attributable. A failed
// creation is recorded and skipped rather than aborting the remainder.
type CreateGroupTransactionsUseCase struct {
	createTransaction *CreateTransactionUseCase
	attachStaged      *AttachStagedDocumentUseCase
	projectRepo       adapter.ProjectRepository
	categoryRepo      adapter.CategoryRepository
}

// NewCreateGroupTransactionsUseCase creates a new CreateGroupTransactionsUseCase instance.
func NewCreateGroupTransactionsUseCase(
	createTransaction *CreateTransactionUseCase,
	attachStaged *AttachStagedDocumentUseCase,
	projectRepo adapter.ProjectRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateGroupTransactionsUseCase {
	return &CreateGroupTransactionsUseCase{
		createTransaction: createTransaction,
		attachStaged:      attachStaged,
		projectRepo:       projectRepo,
		categoryRepo:      categoryRepo,
	}
}

// Execute performs the group submission.
func (uc *CreateGroupTransactionsUseCase) Execute(ctx context.Context, input CreateGroupTransactionsInput) (*CreateGroupTransactionsOutput, error) {
	if len(input.Rows) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeGroupRowsRequired,
			"at least one transaction row is required",
			domainerror.ErrGroupRowsRequired,
		)
	}

	// 1. Resolve referenced projects and categories once
	projects, err := uc.loadProjects(ctx, input.Rows, input.UserID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.loadCategories(ctx, input.Rows, input.UserID)
	if err != nil {
		return nil, err
	}

	// 2. Validate every row before creating anything
	var rowErrors []domainerror.RowError
	for i, row := range input.Rows {
		rowErrors = append(rowErrors, validateGroupRow(i+1, row, projects, categories)...)
	}
	if len(rowErrors) > 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeGroupRowsInvalid,
			"group validation failed",
			&domainerror.GroupValidationError{Rows: rowErrors},
		)
	}

	// 3. Create the rows sequentially, isolating per-row failures
	output := &CreateGroupTransactionsOutput{
		GroupID:      uuid.New(),
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for i, row := range input.Rows {
		created, err := uc.createTransaction.Execute(ctx, CreateTransactionInput{
			UserID:        input.UserID,
			ProjectID:     targetProjectID(row),
			Type:          row.Type,
			Amount:        row.Amount,
			TxDate:        row.TxDate,
			CategoryID:    row.CategoryID,
			SupplierID:    row.SupplierID,
			IsExceptional: row.IsExceptional,
			FromFund:      row.FromFund,
			// Tables legitimately carry equal rows; the duplicate probe
			// only applies to single submissions
			AllowDuplicate: true,
			Notes:          row.Notes,
			GroupID:        &output.GroupID,
		})
		if err != nil {
			output.FailedCount++
			output.RowErrors = append(output.RowErrors, domainerror.RowError{
				Row:     i + 1,
				Message: errorMessage(err),
			})
			continue
		}

		output.CreatedCount++
		output.CreatedIDs = append(output.CreatedIDs, created.Transaction.ID)
		switch row.Type {
		case entity.TransactionTypeIncome:
			output.IncomeCount++
			output.IncomeTotal = output.IncomeTotal.Add(row.Amount)
		case entity.TransactionTypeExpense:
			output.ExpenseCount++
			output.ExpenseTotal = output.ExpenseTotal.Add(row.Amount)
		}

		// 4. Attach the row's staged files; a failed attachment never rolls
		// back the created transaction
		for _, file := range row.Files {
			_, err := uc.attachStaged.Execute(ctx, AttachStagedDocumentInput{
				TransactionID: created.Transaction.ID,
				UserID:        input.UserID,
				StagingKey:    file.StagingKey,
				FileName:      file.FileName,
			})
			if err != nil {
				output.FileErrors = append(output.FileErrors, GroupFileError{
					Row:      i + 1,
					FileName: file.FileName,
					Message:  errorMessage(err),
				})
				continue
			}
			output.AttachedFiles++
		}
	}

	if output.CreatedCount == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAllGroupRowsFailed,
			"all transaction rows failed",
			&domainerror.GroupValidationError{Rows: output.RowErrors},
		)
	}

	output.Partial = len(output.RowErrors) > 0 || len(output.FileErrors) > 0
	return output, nil
}

// loadProjects resolves every project referenced by the rows. Missing or
// foreign projects map to nil so validation can tag the offending rows;
// infrastructure failures abort the submission.
func (uc *CreateGroupTransactionsUseCase) loadProjects(ctx context.Context, rows []GroupRowInput, userID uuid.UUID) (map[uuid.UUID]*entity.Project, error) {
	projects := make(map[uuid.UUID]*entity.Project)
	for _, row := range rows {
		ids := []uuid.UUID{row.ProjectID}
		if row.SubProjectID != nil {
			ids = append(ids, *row.SubProjectID)
		}
		for _, id := range ids {
			if id == uuid.Nil {
				continue
			}
			if _, seen := projects[id]; seen {
				continue
			}
			project, err := uc.projectRepo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, domainerror.ErrProjectNotFound) {
					projects[id] = nil
					continue
				}
				return nil, fmt.Errorf("failed to find project: %w", err)
			}
			if project.UserID != userID {
				projects[id] = nil
				continue
			}
			projects[id] = project
		}
	}
	return projects, nil
}

// loadCategories resolves every category referenced by the rows, for the
// supplier rule. Missing or foreign categories map to nil.
func (uc *CreateGroupTransactionsUseCase) loadCategories(ctx context.Context, rows []GroupRowInput, userID uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	categories := make(map[uuid.UUID]*entity.Category)
	for _, row := range rows {
		if row.CategoryID == nil {
			continue
		}
		id := *row.CategoryID
		if _, seen := categories[id]; seen {
			continue
		}
		category, err := uc.categoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				categories[id] = nil
				continue
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		if category.UserID != userID {
			categories[id] = nil
			continue
		}
		categories[id] = category
	}
	return categories, nil
}

// validateGroupRow collects every validation failure of a single row. Row
// numbers are 1-based.
func validateGroupRow(row int, input GroupRowInput, projects map[uuid.UUID]*entity.Project, categories map[uuid.UUID]*entity.Category) []domainerror.RowError {
	var errs []domainerror.RowError
	fail := func(field, message string) {
		errs = append(errs, domainerror.RowError{Row: row, Field: field, Message: message})
	}

	if input.ProjectID == uuid.Nil {
		fail("project_id", "project is required")
		return errs
	}
	project := projects[input.ProjectID]
	if project == nil {
		fail("project_id", "project not found")
		return errs
	}

	// Parent projects only group sub-projects; rows must target a leaf
	target := project
	if project.IsParent && input.SubProjectID == nil {
		fail("sub_project_id", "a sub-project must be selected for a parent project")
	}
	if input.SubProjectID != nil {
		sub := projects[*input.SubProjectID]
		switch {
		case sub == nil:
			fail("sub_project_id", "sub-project not found")
		case sub.ParentID == nil || *sub.ParentID != project.ID:
			fail("sub_project_id", "sub-project does not belong to the selected project")
		default:
			target = sub
		}
	}

	if !isValidTransactionType(input.Type) {
		fail("type", "transaction type must be 'expense' or 'income'")
	}
	if !input.Amount.IsPositive() {
		fail("amount", "amount must be greater than zero")
	}

	if input.TxDate == nil {
		fail("tx_date", "date is required")
	} else if err := guardContractStart(input.TxDate, nil, target, nil); err != nil {
		fail("tx_date", errorMessage(err))
	}

	var category *entity.Category
	if input.CategoryID != nil {
		category = categories[*input.CategoryID]
		if category == nil {
			fail("category_id", "category not found")
		}
	}
	if err := requireSupplier(input.Type, input.FromFund, input.SupplierID, category); err != nil {
		fail("supplier_id", errorMessage(err))
	}

	return errs
}

// targetProjectID picks the project the row's transaction belongs to.
func targetProjectID(row GroupRowInput) uuid.UUID {
	if row.SubProjectID != nil {
		return *row.SubProjectID
	}
	return row.ProjectID
}

// errorMessage extracts the human-readable message from a domain error,
// falling back to Error() for everything else.
func errorMessage(err error) string {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		return txErr.Message
	}
	var projErr *domainerror.ProjectError
	if errors.As(err, &projErr) {
		return projErr.Message
	}
	var fundErr *domainerror.FundError
	if errors.As(err, &fundErr) {
		return fundErr.Message
	}
	var storageErr *domainerror.StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Message
	}
	return err.Error()
}
