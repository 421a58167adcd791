// Package transaction contains transaction-related use cases.
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
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// MaxNotesLength is the maximum allowed length for transaction notes.
const MaxNotesLength = 1000

// CreateTransactionInput represents the input for transaction creation. A
// transaction is either dated (TxDate) or period-based (PeriodStart and
// PeriodEnd), never both.
type CreateTransactionInput struct {
	UserID           uuid.UUID
	ProjectID        uuid.UUID
	Type             entity.TransactionType
	Amount           decimal.Decimal
	TxDate           *time.Time
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	CategoryID       *uuid.UUID
	SupplierID       *uuid.UUID
	ContractPeriodID *uuid.UUID // Tightens the date guard to the period's start
	IsExceptional    bool
	FromFund         bool
	AllowDuplicate   bool
	Notes            string
	GroupID          *uuid.UUID // Set when the row belongs to a group submission
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
	periodRepo      adapter.ContractPeriodRepository
	categoryRepo    adapter.CategoryRepository
	supplierRepo    adapter.SupplierRepository
	fundRepo        adapter.FundRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
	categoryRepo adapter.CategoryRepository,
	supplierRepo adapter.SupplierRepository,
	fundRepo adapter.FundRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		periodRepo:      periodRepo,
		categoryRepo:    categoryRepo,
		supplierRepo:    supplierRepo,
		fundRepo:        fundRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate notes length
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	// Validate transaction type
	if !isValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Validate amount
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	// Validate the date/period shape
	if err := validateSchedule(input.TxDate, input.PeriodStart, input.PeriodEnd); err != nil {
		return nil, err
	}

	// The fund flag only applies to expenses
	if input.Type == entity.TransactionTypeIncome {
		input.FromFund = false
	}

	project, err := uc.findOwnedProject(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Resolve the contract period when one tightens the date guard
	var contractPeriod *entity.ContractPeriod
	if input.ContractPeriodID != nil {
		period, err := uc.periodRepo.FindByID(ctx, *input.ContractPeriodID)
		if err != nil || period.ProjectID != project.ID {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeContractPeriodNotFound,
				"contract period not found",
				domainerror.ErrContractPeriodNotFound,
			)
		}
		contractPeriod = period
	}

	// Validate category if provided
	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || cat.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		category = cat
	}

	// Validate supplier if provided
	var supplier *entity.Supplier
	if input.SupplierID != nil {
		sup, err := uc.supplierRepo.FindByID(ctx, *input.SupplierID)
		if err != nil || sup.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFoundForTransaction,
			)
		}
		supplier = sup
	}

	// Date guard: nothing may precede the contract start
	if err := guardContractStart(input.TxDate, input.PeriodStart, project, contractPeriod); err != nil {
		return nil, err
	}

	// Expenses not paid from the fund need a supplier, unless the category is
	// the fallback "Other" category
	if err := requireSupplier(input.Type, input.FromFund, input.SupplierID, category); err != nil {
		return nil, err
	}

	// A fund withdrawal needs a fund to withdraw from
	var fund *entity.Fund
	if input.FromFund {
		fund, err = uc.fundRepo.FindByProject(ctx, project.ID)
		if err != nil {
			if errors.Is(err, domainerror.ErrFundNotFound) {
				return nil, domainerror.NewFundError(
					domainerror.ErrCodeFundNotFound,
					"project has no fund",
					domainerror.ErrFundNotFound,
				)
			}
			return nil, fmt.Errorf("failed to load fund: %w", err)
		}
	}

	// Duplicate detection applies to dated transactions
	if input.TxDate != nil && !input.AllowDuplicate {
		exists, err := uc.transactionRepo.ExistsDuplicate(ctx, input.UserID, adapter.DuplicateProbe{
			ProjectID:  project.ID,
			Type:       input.Type,
			Amount:     input.Amount,
			TxDate:     input.TxDate,
			SupplierID: input.SupplierID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicates: %w", err)
		}
		if exists {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDuplicateTransaction,
				"a matching transaction already exists; set allow_duplicate to create it anyway",
				domainerror.ErrDuplicateTransaction,
			)
		}
	}

	// Create transaction entity
	var tx *entity.Transaction
	if input.TxDate != nil {
		tx = entity.NewTransaction(
			input.UserID,
			project.ID,
			input.Type,
			input.Amount,
			valueobject.NormalizeDate(*input.TxDate),
			input.CategoryID,
			input.SupplierID,
			input.Notes,
		)
	} else {
		tx = entity.NewPeriodTransaction(
			input.UserID,
			project.ID,
			input.Type,
			input.Amount,
			valueobject.NormalizeDate(*input.PeriodStart),
			valueobject.NormalizeDate(*input.PeriodEnd),
			input.CategoryID,
			input.SupplierID,
			input.Notes,
		)
	}
	tx.IsExceptional = input.IsExceptional
	tx.FromFund = input.FromFund
	tx.GroupID = input.GroupID

	// Save transaction to database
	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Record the fund withdrawal
	if fund != nil {
		movement := entity.NewFundMovement(
			fund.ID,
			entity.FundMovementWithdrawal,
			input.Amount.Neg(),
			tx.EffectiveDate(),
			&tx.ID,
			tx.Notes,
		)
		if err := uc.fundRepo.CreateMovement(ctx, movement); err != nil {
			return nil, fmt.Errorf("failed to record fund withdrawal: %w", err)
		}
		fund.Apply(movement)
		if err := uc.fundRepo.Update(ctx, fund); err != nil {
			return nil, fmt.Errorf("failed to update fund balance: %w", err)
		}
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(tx, category, supplier, nil),
	}, nil
}

func (uc *CreateTransactionUseCase) findOwnedProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
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
	if project.UserID != userID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}
	return project, nil
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}

// validateSchedule enforces the dated-or-period shape: exactly one of tx_date
// and the period pair, with an ordered period.
func validateSchedule(txDate, periodStart, periodEnd *time.Time) error {
	hasDate := txDate != nil
	hasPeriod := periodStart != nil || periodEnd != nil

	if hasDate && hasPeriod {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDateAndPeriodExclusive,
			"provide either a date or a period, not both",
			domainerror.ErrDateAndPeriodExclusive,
		)
	}
	if !hasDate && !hasPeriod {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionDateRequired,
			"a date or a period is required",
			domainerror.ErrTransactionDateRequired,
		)
	}
	if hasPeriod {
		if periodStart == nil || periodEnd == nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeMissingTransactionFields,
				"period start and period end are both required",
				domainerror.ErrTransactionDateRequired,
			)
		}
		if valueobject.NormalizeDate(*periodEnd).Before(valueobject.NormalizeDate(*periodStart)) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionPeriod,
				"period end must not precede period start",
				domainerror.ErrInvalidTransactionPeriod,
			)
		}
	}
	return nil
}

// guardContractStart rejects dates before the project's start date, or before
// the selected contract period's start when one is given.
func guardContractStart(txDate, periodStart *time.Time, project *entity.Project, contractPeriod *entity.ContractPeriod) error {
	var floor *time.Time
	if contractPeriod != nil {
		floor = &contractPeriod.StartDate
	} else if project.StartDate != nil {
		floor = project.StartDate
	}
	if floor == nil {
		return nil
	}

	effective := txDate
	if effective == nil {
		effective = periodStart
	}
	if effective == nil {
		return nil
	}

	if valueobject.NormalizeDate(*effective).Before(valueobject.NormalizeDate(*floor)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDateBeforeContractStart,
			fmt.Sprintf("date must not precede the contract start (%s)", floor.Format("2006-01-02")),
			domainerror.ErrDateBeforeContractStart,
		)
	}
	return nil
}

// requireSupplier enforces the supplier rule for expenses not paid from the
// fund. The user's "Other" category waives it.
func requireSupplier(txType entity.TransactionType, fromFund bool, supplierID *uuid.UUID, category *entity.Category) error {
	if txType != entity.TransactionTypeExpense || fromFund || supplierID != nil {
		return nil
	}
	if category != nil && category.IsOther {
		return nil
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeSupplierRequired,
		"a supplier is required for expenses outside the Other category",
		domainerror.ErrSupplierRequired,
	)
}
