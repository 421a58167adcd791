// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// ListSubProjectsInput represents the input for listing sub-projects.
type ListSubProjectsInput struct {
	ParentID uuid.UUID
	UserID   uuid.UUID
}

// ListSubProjectsOutput represents the output of listing sub-projects.
type ListSubProjectsOutput struct {
	SubProjects []*ProjectOutput
}

// ListSubProjectsUseCase handles listing the sub-projects of a parent project.
type ListSubProjectsUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewListSubProjectsUseCase creates a new ListSubProjectsUseCase instance.
func NewListSubProjectsUseCase(projectRepo adapter.ProjectRepository) *ListSubProjectsUseCase {
	return &ListSubProjectsUseCase{
		projectRepo: projectRepo,
	}
}

// Execute lists the sub-projects of the parent.
func (uc *ListSubProjectsUseCase) Execute(ctx context.Context, input ListSubProjectsInput) (*ListSubProjectsOutput, error) {
	parent, err := uc.projectRepo.FindByID(ctx, input.ParentID)
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

	if parent.UserID != input.UserID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}

	if !parent.IsParent {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeNotAParentProject,
			"referenced project is not a parent project",
			domainerror.ErrNotAParentProject,
		)
	}

	subs, err := uc.projectRepo.FindSubProjects(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-projects: %w", err)
	}

	output := &ListSubProjectsOutput{
		SubProjects: make([]*ProjectOutput, len(subs)),
	}
	for i, p := range subs {
		output.SubProjects[i] = toProjectOutput(p)
	}
	return output, nil
}
