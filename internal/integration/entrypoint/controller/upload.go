package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/application/usecase/upload"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// UploadController handles staged upload endpoints.
type UploadController struct {
	stageUseCase *upload.StageUploadUseCase
}

// NewUploadController creates a new upload controller instance.
func NewUploadController(stageUseCase *upload.StageUploadUseCase) *UploadController {
	return &UploadController{stageUseCase: stageUseCase}
}

// Stage handles POST /uploads requests. The returned staging key is passed
// back when the owning record is created.
func (c *UploadController) Stage(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Missing file in multipart form",
			Code:  string(domainerror.ErrCodeEmptyUpload),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read uploaded file",
			Code:  string(domainerror.ErrCodeUploadFailed),
		})
		return
	}
	defer file.Close()

	output, err := c.stageUseCase.Execute(ctx.Request.Context(), upload.StageUploadInput{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		c.handleUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToStagedUploadResponse(output))
}

// handleUploadError handles storage errors and returns appropriate HTTP responses.
func (c *UploadController) handleUploadError(ctx *gin.Context, err error) {
	var storageErr *domainerror.StorageError
	if errors.As(err, &storageErr) {
		ctx.JSON(getStatusCodeForStorageError(storageErr.Code), dto.ErrorResponse{
			Error: storageErr.Message,
			Code:  string(storageErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
