package transaction

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func transactionCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txErr *domainerror.TransactionError
	if !errors.As(err, &txErr) {
		t.Fatalf("expected a transaction error, got %v", err)
	}
	return txErr.Code
}

func TestValidateSchedule(t *testing.T) {
	t.Run("accepts a plain date", func(t *testing.T) {
		if err := validateSchedule(datePtr(2024, 3, 10), nil, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("accepts an ordered period", func(t *testing.T) {
		if err := validateSchedule(nil, datePtr(2024, 1, 1), datePtr(2024, 3, 31)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("accepts a single-day period", func(t *testing.T) {
		if err := validateSchedule(nil, datePtr(2024, 2, 15), datePtr(2024, 2, 15)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects date and period together", func(t *testing.T) {
		err := validateSchedule(datePtr(2024, 3, 10), datePtr(2024, 1, 1), datePtr(2024, 3, 31))
		if code := transactionCode(t, err); code != domainerror.ErrCodeDateAndPeriodExclusive {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDateAndPeriodExclusive, code)
		}
	})

	t.Run("rejects neither date nor period", func(t *testing.T) {
		err := validateSchedule(nil, nil, nil)
		if code := transactionCode(t, err); code != domainerror.ErrCodeTransactionDateRequired {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionDateRequired, code)
		}
	})

	t.Run("rejects a half-open period", func(t *testing.T) {
		err := validateSchedule(nil, datePtr(2024, 1, 1), nil)
		if code := transactionCode(t, err); code != domainerror.ErrCodeMissingTransactionFields {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingTransactionFields, code)
		}
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		err := validateSchedule(nil, datePtr(2024, 3, 31), datePtr(2024, 1, 1))
		if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidTransactionPeriod {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidTransactionPeriod, code)
		}
	})
}

func TestGuardContractStart(t *testing.T) {
	project := &entity.Project{ID: uuid.New(), StartDate: datePtr(2024, 1, 15)}

	t.Run("accepts a date on the project start", func(t *testing.T) {
		if err := guardContractStart(datePtr(2024, 1, 15), nil, project, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("accepts a date after the project start", func(t *testing.T) {
		if err := guardContractStart(datePtr(2024, 6, 1), nil, project, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects a date before the project start", func(t *testing.T) {
		err := guardContractStart(datePtr(2024, 1, 14), nil, project, nil)
		if code := transactionCode(t, err); code != domainerror.ErrCodeDateBeforeContractStart {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDateBeforeContractStart, code)
		}
	})

	t.Run("guards the period start for period transactions", func(t *testing.T) {
		err := guardContractStart(nil, datePtr(2024, 1, 1), project, nil)
		if code := transactionCode(t, err); code != domainerror.ErrCodeDateBeforeContractStart {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDateBeforeContractStart, code)
		}
	})

	t.Run("a selected contract period tightens the floor", func(t *testing.T) {
		period := &entity.ContractPeriod{StartDate: date(2025, 1, 15)}
		err := guardContractStart(datePtr(2024, 6, 1), nil, project, period)
		if code := transactionCode(t, err); code != domainerror.ErrCodeDateBeforeContractStart {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDateBeforeContractStart, code)
		}
	})

	t.Run("no start date means no floor", func(t *testing.T) {
		unbounded := &entity.Project{ID: uuid.New()}
		if err := guardContractStart(datePtr(1999, 1, 1), nil, unbounded, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestRequireSupplier(t *testing.T) {
	supplierID := uuid.New()

	t.Run("expense without supplier is rejected", func(t *testing.T) {
		err := requireSupplier(entity.TransactionTypeExpense, false, nil, nil)
		if code := transactionCode(t, err); code != domainerror.ErrCodeSupplierRequired {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeSupplierRequired, code)
		}
	})

	t.Run("expense with supplier passes", func(t *testing.T) {
		if err := requireSupplier(entity.TransactionTypeExpense, false, &supplierID, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("the Other category waives the rule", func(t *testing.T) {
		other := &entity.Category{ID: uuid.New(), IsOther: true}
		if err := requireSupplier(entity.TransactionTypeExpense, false, nil, other); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("a regular category does not waive the rule", func(t *testing.T) {
		regular := &entity.Category{ID: uuid.New()}
		err := requireSupplier(entity.TransactionTypeExpense, false, nil, regular)
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("fund-paid expenses are exempt", func(t *testing.T) {
		if err := requireSupplier(entity.TransactionTypeExpense, true, nil, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("income never needs a supplier", func(t *testing.T) {
		if err := requireSupplier(entity.TransactionTypeIncome, false, nil, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestIsValidTransactionType(t *testing.T) {
	if !isValidTransactionType(entity.TransactionTypeExpense) {
		t.Error("expense should be valid")
	}
	if !isValidTransactionType(entity.TransactionTypeIncome) {
		t.Error("income should be valid")
	}
	if isValidTransactionType(entity.TransactionType("transfer")) {
		t.Error("transfer should not be valid")
	}
}
