package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/usecase/supplier"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// SupplierController handles supplier endpoints.
type SupplierController struct {
	createUseCase      *supplier.CreateSupplierUseCase
	getUseCase         *supplier.GetSupplierUseCase
	listUseCase        *supplier.ListSuppliersUseCase
	updateUseCase      *supplier.UpdateSupplierUseCase
	deleteUseCase      *supplier.DeleteSupplierUseCase
	uploadDocUseCase   *supplier.UploadDocumentUseCase
	listDocsUseCase    *supplier.ListDocumentsUseCase
	downloadDocUseCase *supplier.DownloadDocumentUseCase
}

// NewSupplierController creates a new supplier controller instance.
func NewSupplierController(
	createUseCase *supplier.CreateSupplierUseCase,
	getUseCase *supplier.GetSupplierUseCase,
	listUseCase *supplier.ListSuppliersUseCase,
	updateUseCase *supplier.UpdateSupplierUseCase,
	deleteUseCase *supplier.DeleteSupplierUseCase,
	uploadDocUseCase *supplier.UploadDocumentUseCase,
	listDocsUseCase *supplier.ListDocumentsUseCase,
	downloadDocUseCase *supplier.DownloadDocumentUseCase,
) *SupplierController {
	return &SupplierController{
		createUseCase:      createUseCase,
		getUseCase:         getUseCase,
		listUseCase:        listUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		uploadDocUseCase:   uploadDocUseCase,
		listDocsUseCase:    listDocsUseCase,
		downloadDocUseCase: downloadDocUseCase,
	}
}

// Create handles POST /suppliers requests.
func (c *SupplierController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateSupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeSupplierNameRequired),
		})
		return
	}

	input := supplier.CreateSupplierInput{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		TaxID:  req.TaxID,
		Notes:  req.Notes,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSupplierResponse(output.Supplier))
}

// Get handles GET /suppliers/:id requests.
func (c *SupplierController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), supplier.GetSupplierInput{
		SupplierID: supplierID,
		UserID:     userID,
	})
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierResponse(output.Supplier))
}

// List handles GET /suppliers requests.
func (c *SupplierController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := supplier.ListSuppliersInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve suppliers",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierListResponse(output.Suppliers))
}

// Update handles PUT /suppliers/:id requests.
func (c *SupplierController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
		})
		return
	}

	var req dto.UpdateSupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeSupplierNameRequired),
		})
		return
	}

	input := supplier.UpdateSupplierInput{
		SupplierID: supplierID,
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		TaxID:      req.TaxID,
		Notes:      req.Notes,
		IsActive:   req.IsActive,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierResponse(output.Supplier))
}

// Delete handles DELETE /suppliers/:id requests.
func (c *SupplierController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
		})
		return
	}

	input := supplier.DeleteSupplierInput{
		SupplierID: supplierID,
		UserID:     userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UploadDocument handles POST /suppliers/:id/documents requests.
func (c *SupplierController) UploadDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
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

	input := supplier.UploadDocumentInput{
		SupplierID:  supplierID,
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Reader:      file,
	}

	output, err := c.uploadDocUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSupplierDocumentResponse(output.Document))
}

// ListDocuments handles GET /suppliers/:id/documents requests.
func (c *SupplierController) ListDocuments(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
		})
		return
	}

	output, err := c.listDocsUseCase.Execute(ctx.Request.Context(), supplier.ListDocumentsInput{
		SupplierID: supplierID,
		UserID:     userID,
	})
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierDocumentListResponse(output.Documents))
}

// DownloadDocument handles GET /suppliers/:id/documents/:documentId requests.
func (c *SupplierController) DownloadDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	supplierID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid supplier ID",
			Code:  string(domainerror.ErrCodeSupplierNotFound),
		})
		return
	}
	documentID, err := uuid.Parse(ctx.Param("documentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid document ID",
			Code:  string(domainerror.ErrCodeSupplierDocumentNotFound),
		})
		return
	}

	output, err := c.downloadDocUseCase.Execute(ctx.Request.Context(), supplier.DownloadDocumentInput{
		SupplierID: supplierID,
		DocumentID: documentID,
		UserID:     userID,
	})
	if err != nil {
		c.handleSupplierError(ctx, err)
		return
	}
	defer output.Content.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.DataFromReader(http.StatusOK, output.SizeBytes, output.ContentType, output.Content, nil)
}

// handleSupplierError handles supplier errors and returns appropriate HTTP responses.
func (c *SupplierController) handleSupplierError(ctx *gin.Context, err error) {
	var supplierErr *domainerror.SupplierError
	if errors.As(err, &supplierErr) {
		statusCode := c.getStatusCodeForSupplierError(supplierErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: supplierErr.Message,
			Code:  string(supplierErr.Code),
		})
		return
	}

	var storageErr *domainerror.StorageError
	if errors.As(err, &storageErr) {
		statusCode := getStatusCodeForStorageError(storageErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: storageErr.Message,
			Code:  string(storageErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSupplierError maps supplier error codes to HTTP status codes.
func (c *SupplierController) getStatusCodeForSupplierError(code domainerror.SupplierErrorCode) int {
	switch code {
	case domainerror.ErrCodeSupplierNotFound,
		domainerror.ErrCodeNotAuthorizedSupplier,
		domainerror.ErrCodeSupplierDocumentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSupplierNameRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForStorageError maps storage error codes to HTTP status codes.
// Shared by the controllers that accept or serve files.
func getStatusCodeForStorageError(code domainerror.StorageErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyUpload,
		domainerror.ErrCodeUploadTooLarge,
		domainerror.ErrCodeUnsupportedUpload:
		return http.StatusBadRequest
	case domainerror.ErrCodeObjectNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
