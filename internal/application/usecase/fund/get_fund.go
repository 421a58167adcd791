// Package fund contains fund-related use cases.
package fund

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

const (
	defaultMovementLimit = 20
	maxMovementLimit     = 100
)

// GetFundInput represents the input for retrieving a project's fund.
type GetFundInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Page      int
	Limit     int
}

// FundOutput represents a fund in the output.
type FundOutput struct {
	ID                uuid.UUID
	ProjectID         uuid.UUID
	Balance           decimal.Decimal
	MonthlyAmount     decimal.Decimal
	IsNegative        bool
	LastAccruedPeriod string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MovementOutput represents a fund movement in the output.
type MovementOutput struct {
	ID            uuid.UUID
	Kind          entity.FundMovementKind
	Amount        decimal.Decimal
	OccurredOn    time.Time
	TransactionID *uuid.UUID
	Note          string
	CreatedAt     time.Time
}

// MovementPaginationOutput represents pagination information for movements.
type MovementPaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// GetFundOutput represents the output of retrieving a fund.
type GetFundOutput struct {
	Fund       *FundOutput
	Movements  []*MovementOutput
	Pagination MovementPaginationOutput
}

// GetFundUseCase handles retrieving a project's fund with its movements.
type GetFundUseCase struct {
	projectRepo adapter.ProjectRepository
	fundRepo    adapter.FundRepository
}

// NewGetFundUseCase creates a new GetFundUseCase instance.
func NewGetFundUseCase(
	projectRepo adapter.ProjectRepository,
	fundRepo adapter.FundRepository,
) *GetFundUseCase {
	return &GetFundUseCase{
		projectRepo: projectRepo,
		fundRepo:    fundRepo,
	}
}

// Execute retrieves the fund of a project owned by the user.
func (uc *GetFundUseCase) Execute(ctx context.Context, input GetFundInput) (*GetFundOutput, error) {
	// Apply pagination defaults
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = defaultMovementLimit
	}
	if input.Limit > maxMovementLimit {
		input.Limit = maxMovementLimit
	}

	// Find project and validate ownership
	if _, err := findOwnedProject(ctx, uc.projectRepo, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}

	// Load the fund
	fund, err := uc.fundRepo.FindByProject(ctx, input.ProjectID)
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

	// Load the movements page
	result, err := uc.fundRepo.FindMovements(ctx, fund.ID, adapter.TransactionPagination{
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load fund movements: %w", err)
	}

	output := &GetFundOutput{
		Fund: &FundOutput{
			ID:                fund.ID,
			ProjectID:         fund.ProjectID,
			Balance:           fund.Balance,
			MonthlyAmount:     fund.MonthlyAmount,
			IsNegative:        fund.IsNegative(),
			LastAccruedPeriod: fund.LastAccruedPeriod,
			CreatedAt:         fund.CreatedAt,
			UpdatedAt:         fund.UpdatedAt,
		},
		Movements: make([]*MovementOutput, 0, len(result.Movements)),
		Pagination: MovementPaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for _, m := range result.Movements {
		output.Movements = append(output.Movements, &MovementOutput{
			ID:            m.ID,
			Kind:          m.Kind,
			Amount:        m.Amount,
			OccurredOn:    m.OccurredOn,
			TransactionID: m.TransactionID,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}

	return output, nil
}

// findOwnedProject hides foreign projects behind not-found.
func findOwnedProject(ctx context.Context, repo adapter.ProjectRepository, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := repo.FindByID(ctx, projectID)
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
