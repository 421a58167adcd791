// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// ArchiveProjectInput represents the input for archiving or unarchiving a project.
type ArchiveProjectInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Unarchive bool
}

// ArchiveProjectOutput represents the output of archiving a project.
type ArchiveProjectOutput struct {
	Project *ProjectOutput
}

// ArchiveProjectUseCase handles soft-archiving of projects. Archived projects
// keep their full history but drop out of default listings.
type ArchiveProjectUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewArchiveProjectUseCase creates a new ArchiveProjectUseCase instance.
func NewArchiveProjectUseCase(projectRepo adapter.ProjectRepository) *ArchiveProjectUseCase {
	return &ArchiveProjectUseCase{
		projectRepo: projectRepo,
	}
}

// Execute archives or unarchives the project.
func (uc *ArchiveProjectUseCase) Execute(ctx context.Context, input ArchiveProjectInput) (*ArchiveProjectOutput, error) {
	project, err := uc.findOwned(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Unarchive {
		project.Unarchive()
	} else {
		project.Archive()
	}

	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &ArchiveProjectOutput{Project: toProjectOutput(project)}, nil
}

func (uc *ArchiveProjectUseCase) findOwned(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
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
