// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// AssetKind identifies which project asset an upload replaces.
type AssetKind string

const (
	AssetKindImage    AssetKind = "image"
	AssetKindContract AssetKind = "contract"
)

const maxAssetSizeBytes = 15 << 20 // 15 MiB

var assetContentTypes = map[AssetKind]map[string]bool{
	AssetKindImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AssetKindContract: {
		"application/pdf": true,
	},
}

// UploadProjectAssetInput represents the input for a project asset upload.
type UploadProjectAssetInput struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Kind        AssetKind
	FileName    string
	ContentType string
	SizeBytes   int64
	Reader      io.Reader
}

// UploadProjectAssetOutput represents the output of a project asset upload.
type UploadProjectAssetOutput struct {
	Project *ProjectOutput
	URL     string
}

// UploadProjectAssetUseCase stores a project image or contract file in object
// storage and records its URL on the project.
type UploadProjectAssetUseCase struct {
	projectRepo adapter.ProjectRepository
	storage     adapter.ObjectStorage
}

// NewUploadProjectAssetUseCase creates a new UploadProjectAssetUseCase instance.
func NewUploadProjectAssetUseCase(
	projectRepo adapter.ProjectRepository,
	storage adapter.ObjectStorage,
) *UploadProjectAssetUseCase {
	return &UploadProjectAssetUseCase{
		projectRepo: projectRepo,
		storage:     storage,
	}
}

// Execute performs the asset upload.
func (uc *UploadProjectAssetUseCase) Execute(ctx context.Context, input UploadProjectAssetInput) (*UploadProjectAssetOutput, error) {
	allowed, ok := assetContentTypes[input.Kind]
	if !ok {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectAssetUploadFailed,
			fmt.Sprintf("unknown asset kind: %s", input.Kind),
			nil,
		)
	}
	if input.SizeBytes <= 0 {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeEmptyUpload,
			"uploaded file is empty",
			domainerror.ErrEmptyUpload,
		)
	}
	if input.SizeBytes > maxAssetSizeBytes {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadTooLarge,
			"uploaded file exceeds the size limit",
			domainerror.ErrUploadTooLarge,
		)
	}
	if !allowed[normalizeContentType(input.ContentType)] {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUnsupportedUpload,
			fmt.Sprintf("unsupported content type for %s upload: %s", input.Kind, input.ContentType),
			domainerror.ErrUnsupportedUpload,
		)
	}

	project, err := uc.findOwnedProject(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// A fresh key per upload so stale caches never serve the old asset
	key := fmt.Sprintf("projects/%s/%s-%s%s",
		project.ID, input.Kind, uuid.New(), strings.ToLower(path.Ext(input.FileName)))
	if err := uc.storage.Put(ctx, key, input.Reader, input.SizeBytes, input.ContentType); err != nil {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectAssetUploadFailed,
			"failed to store project asset",
			err,
		)
	}

	url := uc.storage.PublicURL(key)
	switch input.Kind {
	case AssetKindImage:
		project.ImageURL = url
	case AssetKindContract:
		project.ContractURL = url
	}
	project.UpdatedAt = time.Now().UTC()
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &UploadProjectAssetOutput{
		Project: toProjectOutput(project),
		URL:     url,
	}, nil
}

func (uc *UploadProjectAssetUseCase) findOwnedProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
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

func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
