package dto

import (
	"github.com/property-ledger/backend/internal/application/usecase/upload"
)

// StagedUploadResponse represents a staged upload in API responses. The
// staging key is later exchanged for a permanent attachment.
type StagedUploadResponse struct {
	StagingKey  string `json:"staging_key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// ToStagedUploadResponse converts a StageUploadOutput to its DTO.
func ToStagedUploadResponse(output *upload.StageUploadOutput) StagedUploadResponse {
	return StagedUploadResponse{
		StagingKey:  output.StagingKey,
		FileName:    output.FileName,
		ContentType: output.ContentType,
		SizeBytes:   output.SizeBytes,
	}
}
