package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for deleting a category.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryUseCase handles category deletion. Transactions keep their
// category reference through the soft delete.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	bus          *event.Bus
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, bus *event.Bus) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		bus:          bus,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	// Find category and validate ownership
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != input.UserID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to modify this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	// The fallback category anchors the supplier rule and cannot be removed
	if category.IsOther {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeOtherCategoryImmutable,
			"the Other category cannot be deleted",
			domainerror.ErrOtherCategoryImmutable,
		)
	}

	// Delete category from database
	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	uc.bus.Publish(ctx, event.CategoriesChanged{UserID: input.UserID})

	return nil
}
