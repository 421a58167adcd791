// Package upload contains the staging upload use case.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// MaxStagedUploadSizeBytes is the upload limit for staged files.
const MaxStagedUploadSizeBytes = 15 << 20 // 15 MiB

// StageUploadInput represents a file uploaded ahead of the record it will be
// attached to (group transaction rows reference staging keys).
type StageUploadInput struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	Reader      io.Reader
}

// StageUploadOutput carries the staging key the client passes back when the
// owning record is created.
type StageUploadOutput struct {
	StagingKey  string
	FileName    string
	ContentType string
	SizeBytes   int64
}

// StageUploadUseCase stores an uploaded file under the staging namespace.
type StageUploadUseCase struct {
	storage adapter.ObjectStorage
}

// NewStageUploadUseCase creates a new StageUploadUseCase instance.
func NewStageUploadUseCase(storage adapter.ObjectStorage) *StageUploadUseCase {
	return &StageUploadUseCase{storage: storage}
}

// Execute performs the staged upload.
func (uc *StageUploadUseCase) Execute(ctx context.Context, input StageUploadInput) (*StageUploadOutput, error) {
	if input.SizeBytes <= 0 {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeEmptyUpload,
			"uploaded file is empty",
			domainerror.ErrEmptyUpload,
		)
	}
	if input.SizeBytes > MaxStagedUploadSizeBytes {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadTooLarge,
			"uploaded file exceeds the size limit",
			domainerror.ErrUploadTooLarge,
		)
	}

	key := stagingKey(input.UserID, input.FileName)
	if err := uc.storage.Put(ctx, key, input.Reader, input.SizeBytes, input.ContentType); err != nil {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadFailed,
			"failed to store staged upload",
			err,
		)
	}

	return &StageUploadOutput{
		StagingKey:  key,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	}, nil
}

// stagingKey builds the storage key for a staged upload. Keys are scoped per
// user so uploads cannot be guessed across accounts.
func stagingKey(userID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s%s/%s%s",
		adapter.StagingPrefix, userID, uuid.New(), strings.ToLower(path.Ext(fileName)))
}
