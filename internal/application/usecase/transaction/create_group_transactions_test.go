package transaction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func TestValidateGroupRow(t *testing.T) {
	parent := &entity.Project{ID: uuid.New(), IsParent: true, StartDate: datePtr(2024, 1, 1)}
	sub := &entity.Project{ID: uuid.New(), ParentID: &parent.ID, StartDate: datePtr(2024, 3, 1)}
	leaf := &entity.Project{ID: uuid.New(), StartDate: datePtr(2024, 1, 1)}
	stranger := &entity.Project{ID: uuid.New(), StartDate: datePtr(2024, 1, 1)}

	projects := map[uuid.UUID]*entity.Project{
		parent.ID:   parent,
		sub.ID:      sub,
		leaf.ID:     leaf,
		stranger.ID: stranger,
	}

	other := &entity.Category{ID: uuid.New(), IsOther: true}
	regular := &entity.Category{ID: uuid.New()}
	categories := map[uuid.UUID]*entity.Category{
		other.ID:   other,
		regular.ID: regular,
	}

	supplierID := uuid.New()

	validRow := func() GroupRowInput {
		return GroupRowInput{
			ProjectID:  leaf.ID,
			Type:       entity.TransactionTypeExpense,
			Amount:     decimal.NewFromInt(100),
			TxDate:     datePtr(2024, 5, 10),
			SupplierID: &supplierID,
		}
	}

	t.Run("a valid row produces no errors", func(t *testing.T) {
		errs := validateGroupRow(1, validRow(), projects, categories)
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("missing project", func(t *testing.T) {
		row := validRow()
		row.ProjectID = uuid.Nil
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "project_id" {
			t.Fatalf("expected one project_id error, got %v", errs)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		row := validRow()
		row.ProjectID = uuid.New()
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Message != "project not found" {
			t.Fatalf("expected a project-not-found error, got %v", errs)
		}
	})

	t.Run("parent project requires a sub-project", func(t *testing.T) {
		row := validRow()
		row.ProjectID = parent.ID
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "sub_project_id" {
			t.Fatalf("expected one sub_project_id error, got %v", errs)
		}
	})

	t.Run("sub-project must belong to the named project", func(t *testing.T) {
		row := validRow()
		row.ProjectID = parent.ID
		row.SubProjectID = &stranger.ID
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "sub_project_id" {
			t.Fatalf("expected one sub_project_id error, got %v", errs)
		}
	})

	t.Run("date guard runs against the sub-projects start", func(t *testing.T) {
		row := validRow()
		row.ProjectID = parent.ID
		row.SubProjectID = &sub.ID
		row.TxDate = datePtr(2024, 2, 1) // After the parent start, before the sub start
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "tx_date" {
			t.Fatalf("expected one tx_date error, got %v", errs)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		row := validRow()
		row.Amount = decimal.NewFromInt(-50)
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "amount" {
			t.Fatalf("expected one amount error, got %v", errs)
		}
	})

	t.Run("date is required", func(t *testing.T) {
		row := validRow()
		row.TxDate = nil
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "tx_date" {
			t.Fatalf("expected one tx_date error, got %v", errs)
		}
	})

	t.Run("expense without supplier", func(t *testing.T) {
		row := validRow()
		row.SupplierID = nil
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 1 || errs[0].Field != "supplier_id" {
			t.Fatalf("expected one supplier_id error, got %v", errs)
		}
	})

	t.Run("the Other category waives the supplier rule", func(t *testing.T) {
		row := validRow()
		row.SupplierID = nil
		row.CategoryID = &other.ID
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("fund-paid expenses skip the supplier rule", func(t *testing.T) {
		row := validRow()
		row.SupplierID = nil
		row.FromFund = true
		errs := validateGroupRow(1, row, projects, categories)
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("failures are collected, not short-circuited", func(t *testing.T) {
		row := validRow()
		row.Amount = decimal.Zero
		row.TxDate = nil
		row.SupplierID = nil
		errs := validateGroupRow(3, row, projects, categories)
		if len(errs) != 3 {
			t.Fatalf("expected three errors, got %v", errs)
		}
		for _, e := range errs {
			if e.Row != 3 {
				t.Errorf("expected row 3, got %d", e.Row)
			}
		}
	})
}

func TestTargetProjectID(t *testing.T) {
	projectID := uuid.New()
	subID := uuid.New()

	if got := targetProjectID(GroupRowInput{ProjectID: projectID}); got != projectID {
		t.Errorf("expected %s, got %s", projectID, got)
	}
	if got := targetProjectID(GroupRowInput{ProjectID: projectID, SubProjectID: &subID}); got != subID {
		t.Errorf("expected %s, got %s", subID, got)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("unwraps transaction errors to their message", func(t *testing.T) {
		err := domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
		if got := errorMessage(err); got != "amount must be greater than zero" {
			t.Errorf("unexpected message: %q", got)
		}
	})

	t.Run("unwraps project errors to their message", func(t *testing.T) {
		err := domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
		if got := errorMessage(err); got != "project not found" {
			t.Errorf("unexpected message: %q", got)
		}
	})

	t.Run("falls back to Error for plain errors", func(t *testing.T) {
		if got := errorMessage(domainerror.ErrObjectNotFound); got != "storage object not found" {
			t.Errorf("unexpected message: %q", got)
		}
	})
}
