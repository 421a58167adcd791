// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DeleteProjectInput represents the input for project deletion. The account
// password is required: deletion is irreversible and cascades to everything
// the project owns.
type DeleteProjectInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Password  string
}

// DeleteProjectOutput represents the output of project deletion.
type DeleteProjectOutput struct {
	Success bool
}

// DeleteProjectUseCase handles password-gated project deletion.
type DeleteProjectUseCase struct {
	projectRepo     adapter.ProjectRepository
	periodRepo      adapter.ContractPeriodRepository
	transactionRepo adapter.TransactionRepository
	recurringRepo   adapter.RecurringTemplateRepository
	budgetRepo      adapter.BudgetRepository
	fundRepo        adapter.FundRepository
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	bus             *event.Bus
}

// NewDeleteProjectUseCase creates a new DeleteProjectUseCase instance.
func NewDeleteProjectUseCase(
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
	transactionRepo adapter.TransactionRepository,
	recurringRepo adapter.RecurringTemplateRepository,
	budgetRepo adapter.BudgetRepository,
	fundRepo adapter.FundRepository,
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	bus *event.Bus,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo:     projectRepo,
		periodRepo:      periodRepo,
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
		budgetRepo:      budgetRepo,
		fundRepo:        fundRepo,
		userRepo:        userRepo,
		passwordService: passwordService,
		bus:             bus,
	}
}

// Execute performs the project deletion after verifying the account password.
// Sub-projects of a deleted parent are deleted with it.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) (*DeleteProjectOutput, error) {
	if input.Password == "" {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeDeletePasswordRequired,
			"account password is required to delete a project",
			nil,
		)
	}

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

	// Verify the account password
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWrongPassword,
			"password does not match",
			domainerror.ErrWrongPassword,
		)
	}

	// Collect the cascade targets: the project plus its sub-projects
	targets := []uuid.UUID{project.ID}
	if project.IsParent {
		subs, err := uc.projectRepo.FindSubProjects(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list sub-projects: %w", err)
		}
		for _, s := range subs {
			targets = append(targets, s.ID)
		}
	}

	// Cascade: transactions, templates, budgets, fund, periods, then the
	// project rows themselves
	for _, id := range targets {
		if err := uc.transactionRepo.DeleteByProject(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete transactions: %w", err)
		}
		if err := uc.recurringRepo.DeleteByProject(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete recurring templates: %w", err)
		}
		if err := uc.budgetRepo.DeleteByProject(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete budgets: %w", err)
		}
		if err := uc.fundRepo.DeleteByProject(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete fund: %w", err)
		}
		if err := uc.periodRepo.DeleteByProject(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete contract periods: %w", err)
		}
		if err := uc.projectRepo.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if uc.bus != nil {
		uc.bus.Publish(ctx, event.ProjectDeleted{UserID: input.UserID, ProjectID: project.ID})
	}

	return &DeleteProjectOutput{Success: true}, nil
}
