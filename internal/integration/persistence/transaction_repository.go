// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database. A unique-index violation
// on (recurring_template_id, generated_period) surfaces as
// ErrDuplicateTransaction so concurrent generation runs stay idempotent.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrDuplicateTransaction
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithRefs retrieves a transaction with category, supplier and
// documents resolved.
func (r *transactionRepository) FindByIDWithRefs(ctx context.Context, id uuid.UUID) (*entity.TransactionWithRefs, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}

	withRefs := transactionModel.ToEntityWithRefs()

	documents, err := r.FindDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	withRefs.Documents = documents

	return withRefs, nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := r.filteredQuery(ctx, filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	// Fetch transactions with references preloaded
	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Preload("Supplier").
		Order("COALESCE(tx_date, period_start) DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithRefs()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindOverlappingWindow retrieves all live transactions of the given projects
// whose date or period overlaps start..end.
func (r *transactionRepository) FindOverlappingWindow(ctx context.Context, projectIDs []uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Where("(tx_date BETWEEN ? AND ?) OR (period_start <= ? AND period_end >= ?)", start, end, end, start).
		Order("COALESCE(tx_date, period_start) ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindBySupplierWindow retrieves all live transactions of a supplier whose
// date or period overlaps start..end, across every project of the user.
func (r *transactionRepository) FindBySupplierWindow(ctx context.Context, supplierID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Where("(tx_date BETWEEN ? AND ?) OR (period_start <= ? AND period_end >= ?)", start, end, end, start).
		Order("COALESCE(tx_date, period_start) ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// GetTotals aggregates income and expense sums over the filtered set,
// ignoring pagination.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	query := r.filteredQuery(ctx, filter)

	var incomeResult struct {
		Total decimal.Decimal
	}
	incomeQuery := query.Session(&gorm.Session{}).Where("type = ?", string(entity.TransactionTypeIncome))
	if err := incomeQuery.Select("COALESCE(SUM(amount), 0) as total").Scan(&incomeResult).Error; err != nil {
		return nil, err
	}

	var expenseResult struct {
		Total decimal.Decimal
	}
	expenseQuery := query.Session(&gorm.Session{}).Where("type = ?", string(entity.TransactionTypeExpense))
	if err := expenseQuery.Select("COALESCE(SUM(amount), 0) as total").Scan(&expenseResult).Error; err != nil {
		return nil, err
	}

	return &entity.TransactionTotals{
		IncomeTotal:  incomeResult.Total,
		ExpenseTotal: expenseResult.Total,
	}, nil
}

// ExistsDuplicate checks whether a transaction matching the probe already exists.
func (r *transactionRepository) ExistsDuplicate(ctx context.Context, userID uuid.UUID, probe adapter.DuplicateProbe) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ? AND project_id = ? AND type = ? AND amount = ?",
			userID, probe.ProjectID, string(probe.Type), probe.Amount)

	if probe.TxDate != nil {
		query = query.Where("tx_date = ?", *probe.TxDate)
	} else {
		query = query.Where("tx_date IS NULL")
	}
	if probe.SupplierID != nil {
		query = query.Where("supplier_id = ?", *probe.SupplierID)
	} else {
		query = query.Where("supplier_id IS NULL")
	}

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ExistsForTemplateAndPeriod checks whether a template already generated an
// instance for the YYYY-MM period.
func (r *transactionRepository) ExistsForTemplateAndPeriod(ctx context.Context, templateID uuid.UUID, period string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("recurring_template_id = ? AND generated_period = ?", templateID, period).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteByProject hard-deletes all transactions of a project, documents
// included. Used by the project cascade delete.
func (r *transactionRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("transaction_id IN (?)",
				tx.Model(&model.TransactionModel{}).Unscoped().Select("id").Where("project_id = ?", projectID),
			).
			Delete(&model.TransactionDocumentModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("project_id = ?", projectID).Delete(&model.TransactionModel{}).Error
	})
}

// CreateDocument attaches a document row to a transaction.
func (r *transactionRepository) CreateDocument(ctx context.Context, doc *entity.TransactionDocument) error {
	documentModel := model.TransactionDocumentFromEntity(doc)
	result := r.db.WithContext(ctx).Create(documentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindDocuments lists the documents of a transaction.
func (r *transactionRepository) FindDocuments(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionDocument, error) {
	var documentModels []model.TransactionDocumentModel
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("uploaded_at asc").
		Find(&documentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	documents := make([]*entity.TransactionDocument, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToEntity()
	}
	return documents, nil
}

// FindDocumentsByTransactionIDs lists the documents of several transactions
// in one query.
func (r *transactionRepository) FindDocumentsByTransactionIDs(ctx context.Context, transactionIDs []uuid.UUID) ([]*entity.TransactionDocument, error) {
	if len(transactionIDs) == 0 {
		return nil, nil
	}

	var documentModels []model.TransactionDocumentModel
	result := r.db.WithContext(ctx).
		Where("transaction_id IN ?", transactionIDs).
		Order("uploaded_at asc").
		Find(&documentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	documents := make([]*entity.TransactionDocument, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToEntity()
	}
	return documents, nil
}

// FindDocumentByID retrieves a single transaction document.
func (r *transactionRepository) FindDocumentByID(ctx context.Context, id uuid.UUID) (*entity.TransactionDocument, error) {
	var documentModel model.TransactionDocumentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&documentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionDocumentNotFound
		}
		return nil, result.Error
	}
	return documentModel.ToEntity(), nil
}

// filteredQuery builds the shared filter query used by FindByFilter and
// GetTotals so the listing and its totals always agree. A transaction matches
// the date bounds when its date, or any day of its period, falls inside them.
func (r *transactionRepository) filteredQuery(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if len(filter.ProjectIDs) > 0 {
		query = query.Where("project_id IN ?", filter.ProjectIDs)
	} else if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.IsExceptional != nil {
		query = query.Where("is_exceptional = ?", *filter.IsExceptional)
	}
	if filter.FromFund != nil {
		query = query.Where("from_fund = ?", *filter.FromFund)
	}

	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		query = query.Where("(tx_date BETWEEN ? AND ?) OR (period_start <= ? AND period_end >= ?)",
			*filter.StartDate, *filter.EndDate, *filter.EndDate, *filter.StartDate)
	case filter.StartDate != nil:
		query = query.Where("tx_date >= ? OR period_end >= ?", *filter.StartDate, *filter.StartDate)
	case filter.EndDate != nil:
		query = query.Where("tx_date <= ? OR period_start <= ?", *filter.EndDate, *filter.EndDate)
	}

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(notes) LIKE ?", searchPattern)
	}

	return query
}
