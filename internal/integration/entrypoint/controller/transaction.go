package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/usecase/transaction"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase         *transaction.ListTransactionsUseCase
	getUseCase          *transaction.GetTransactionUseCase
	createUseCase       *transaction.CreateTransactionUseCase
	updateUseCase       *transaction.UpdateTransactionUseCase
	deleteUseCase       *transaction.DeleteTransactionUseCase
	createGroupUseCase  *transaction.CreateGroupTransactionsUseCase
	attachUseCase       *transaction.AttachDocumentUseCase
	attachStagedUseCase *transaction.AttachStagedDocumentUseCase
	listDocsUseCase     *transaction.ListDocumentsUseCase
	downloadDocUseCase  *transaction.DownloadDocumentUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	createGroupUseCase *transaction.CreateGroupTransactionsUseCase,
	attachUseCase *transaction.AttachDocumentUseCase,
	attachStagedUseCase *transaction.AttachStagedDocumentUseCase,
	listDocsUseCase *transaction.ListDocumentsUseCase,
	downloadDocUseCase *transaction.DownloadDocumentUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		createUseCase:       createUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		createGroupUseCase:  createGroupUseCase,
		attachUseCase:       attachUseCase,
		attachStagedUseCase: attachStagedUseCase,
		listDocsUseCase:     listDocsUseCase,
		downloadDocUseCase:  downloadDocUseCase,
	}
}

// ListByProject handles GET /transactions/project/:id requests.
func (c *TransactionController) ListByProject(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid project ID",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:    userID,
		ProjectID: projectID,
		Search:    ctx.Query("search"),
	}

	// Window filters
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			input.EndDate = &endDate
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			input.CategoryID = &categoryID
		}
	}
	if supplierIDStr := ctx.Query("supplier_id"); supplierIDStr != "" {
		if supplierID, err := uuid.Parse(supplierIDStr); err == nil {
			input.SupplierID = &supplierID
		}
	}
	if exceptionalStr := ctx.Query("is_exceptional"); exceptionalStr != "" {
		isExceptional := exceptionalStr == "true"
		input.IsExceptional = &isExceptional
	}
	if fromFundStr := ctx.Query("from_fund"); fromFundStr != "" {
		fromFund := fromFundStr == "true"
		input.FromFund = &fromFund
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid project ID",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:         userID,
		ProjectID:      projectID,
		Type:           entity.TransactionType(req.Type),
		Amount:         decimal.NewFromFloat(req.Amount),
		IsExceptional:  req.IsExceptional,
		FromFund:       req.FromFund,
		AllowDuplicate: req.AllowDuplicate,
		Notes:          req.Notes,
	}

	if !c.bindDates(ctx, req.Date, req.PeriodStart, req.PeriodEnd, &input.TxDate, &input.PeriodStart, &input.PeriodEnd) {
		return
	}
	if !c.bindReferences(ctx, req.CategoryID, req.SupplierID, &input.CategoryID, &input.SupplierID) {
		return
	}
	if req.ContractPeriodID != nil && *req.ContractPeriodID != "" {
		contractPeriodID, err := uuid.Parse(*req.ContractPeriodID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid contract period ID",
				Code:  string(domainerror.ErrCodeContractPeriodNotFound),
			})
			return
		}
		input.ContractPeriodID = &contractPeriodID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		ClearCategory: req.ClearCategory,
		ClearSupplier: req.ClearSupplier,
		IsExceptional: req.IsExceptional,
		Notes:         req.Notes,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if !c.bindDates(ctx, req.Date, req.PeriodStart, req.PeriodEnd, &input.TxDate, &input.PeriodStart, &input.PeriodEnd) {
		return
	}
	if !c.bindReferences(ctx, req.CategoryID, req.SupplierID, &input.CategoryID, &input.SupplierID) {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	input := transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateGroup handles POST /transactions/group requests. All rows are
// validated up front; creation failures after that point are collected
// per row rather than aborting the batch.
func (c *TransactionController) CreateGroup(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateGroupTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeGroupRowsRequired),
		})
		return
	}

	input := transaction.CreateGroupTransactionsInput{
		UserID: userID,
		Rows:   make([]transaction.GroupRowInput, 0, len(req.Rows)),
	}

	for i, row := range req.Rows {
		rowInput, ok := c.bindGroupRow(ctx, i, row)
		if !ok {
			return
		}
		input.Rows = append(input.Rows, rowInput)
	}

	output, err := c.createGroupUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGroupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupTransactionsResponse(output))
}

// bindGroupRow converts one request row into its use case input. Structural
// problems (malformed UUIDs, bad dates) reject the whole request; business
// validation happens in the use case, aggregated per row.
func (c *TransactionController) bindGroupRow(ctx *gin.Context, index int, row dto.GroupRowRequest) (transaction.GroupRowInput, bool) {
	rowInput := transaction.GroupRowInput{
		Type:          entity.TransactionType(row.Type),
		Amount:        decimal.NewFromFloat(row.Amount),
		IsExceptional: row.IsExceptional,
		FromFund:      row.FromFund,
		Notes:         row.Notes,
	}

	projectID, err := uuid.Parse(row.ProjectID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid project ID",
			Code:    string(domainerror.ErrCodeGroupRowsInvalid),
			Details: fmt.Sprintf("row %d", index+1),
		})
		return rowInput, false
	}
	rowInput.ProjectID = projectID

	if row.SubProjectID != nil && *row.SubProjectID != "" {
		subProjectID, err := uuid.Parse(*row.SubProjectID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid sub-project ID",
				Code:    string(domainerror.ErrCodeGroupRowsInvalid),
				Details: fmt.Sprintf("row %d", index+1),
			})
			return rowInput, false
		}
		rowInput.SubProjectID = &subProjectID
	}

	txDate, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid date format. Use YYYY-MM-DD",
			Code:    string(domainerror.ErrCodeGroupRowsInvalid),
			Details: fmt.Sprintf("row %d", index+1),
		})
		return rowInput, false
	}
	rowInput.TxDate = &txDate

	if row.CategoryID != nil && *row.CategoryID != "" {
		categoryID, err := uuid.Parse(*row.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid category ID",
				Code:    string(domainerror.ErrCodeGroupRowsInvalid),
				Details: fmt.Sprintf("row %d", index+1),
			})
			return rowInput, false
		}
		rowInput.CategoryID = &categoryID
	}
	if row.SupplierID != nil && *row.SupplierID != "" {
		supplierID, err := uuid.Parse(*row.SupplierID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid supplier ID",
				Code:    string(domainerror.ErrCodeGroupRowsInvalid),
				Details: fmt.Sprintf("row %d", index+1),
			})
			return rowInput, false
		}
		rowInput.SupplierID = &supplierID
	}

	for _, file := range row.Files {
		rowInput.Files = append(rowInput.Files, transaction.GroupFileInput{
			StagingKey: file.StagingKey,
			FileName:   file.FileName,
		})
	}

	return rowInput, true
}

// AttachDocument handles POST /transactions/:id/supplier-document requests.
func (c *TransactionController) AttachDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
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

	output, err := c.attachUseCase.Execute(ctx.Request.Context(), transaction.AttachDocumentInput{
		TransactionID: transactionID,
		UserID:        userID,
		FileName:      fileHeader.Filename,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		SizeBytes:     fileHeader.Size,
		Reader:        file,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toTransactionDocumentResponse(output.Document))
}

// AttachStagedDocument handles POST /transactions/:id/supplier-document/staged
// requests, linking a previously staged upload.
func (c *TransactionController) AttachStagedDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	var req dto.AttachStagedDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyUpload),
		})
		return
	}

	output, err := c.attachStagedUseCase.Execute(ctx.Request.Context(), transaction.AttachStagedDocumentInput{
		TransactionID: transactionID,
		UserID:        userID,
		StagingKey:    req.StagingKey,
		FileName:      req.FileName,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toTransactionDocumentResponse(output.Document))
}

// ListDocuments handles GET /transactions/:id/supplier-document requests.
func (c *TransactionController) ListDocuments(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	output, err := c.listDocsUseCase.Execute(ctx.Request.Context(), transaction.ListDocumentsInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	documents := make([]dto.TransactionDocumentResponse, len(output.Documents))
	for i, doc := range output.Documents {
		documents[i] = toTransactionDocumentResponse(doc)
	}

	ctx.JSON(http.StatusOK, gin.H{"documents": documents})
}

// DownloadDocument handles GET /transactions/:id/supplier-document/:documentId requests.
func (c *TransactionController) DownloadDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}
	documentID, err := uuid.Parse(ctx.Param("documentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid document ID",
			Code:  string(domainerror.ErrCodeTransactionDocumentNotFound),
		})
		return
	}

	output, err := c.downloadDocUseCase.Execute(ctx.Request.Context(), transaction.DownloadDocumentInput{
		TransactionID: transactionID,
		DocumentID:    documentID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	defer output.Content.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.DataFromReader(http.StatusOK, output.SizeBytes, output.ContentType, output.Content, nil)
}

// bindDates parses the optional date and period strings into the input's
// pointers. Returns false after writing the error response.
func (c *TransactionController) bindDates(ctx *gin.Context, date, periodStart, periodEnd *string, txDate, start, end **time.Time) bool {
	if date != nil && *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeTransactionDateRequired),
			})
			return false
		}
		*txDate = &parsed
	}
	if periodStart != nil && *periodStart != "" {
		parsed, err := time.Parse("2006-01-02", *periodStart)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid period start format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionPeriod),
			})
			return false
		}
		*start = &parsed
	}
	if periodEnd != nil && *periodEnd != "" {
		parsed, err := time.Parse("2006-01-02", *periodEnd)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid period end format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidTransactionPeriod),
			})
			return false
		}
		*end = &parsed
	}
	return true
}

// bindReferences parses the optional category and supplier IDs. Returns false
// after writing the error response.
func (c *TransactionController) bindReferences(ctx *gin.Context, categoryID, supplierID *string, category, supplier **uuid.UUID) bool {
	if categoryID != nil && *categoryID != "" {
		parsed, err := uuid.Parse(*categoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			})
			return false
		}
		*category = &parsed
	}
	if supplierID != nil && *supplierID != "" {
		parsed, err := uuid.Parse(*supplierID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid supplier ID",
				Code:  string(domainerror.ErrCodeTxnSupplierNotFound),
			})
			return false
		}
		*supplier = &parsed
	}
	return true
}

func toTransactionDocumentResponse(doc *transaction.DocumentOutput) dto.TransactionDocumentResponse {
	return dto.TransactionDocumentResponse{
		ID:          doc.ID.String(),
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		UploadedAt:  doc.UploadedAt,
	}
}

// handleGroupError maps group submission failures. A validation aggregate
// means nothing was created (422); an all-rows-failed aggregate means the
// batch ran and every row broke (502).
func (c *TransactionController) handleGroupError(ctx *gin.Context, err error) {
	var validationErr *domainerror.GroupValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.GroupValidationResponse{
			Error:     "Group validation failed",
			Code:      string(domainerror.ErrCodeGroupRowsInvalid),
			RowErrors: validationErr.Rows,
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) && txnErr.Code == domainerror.ErrCodeAllGroupRowsFailed {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	c.handleTransactionError(ctx, err)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := c.getStatusCodeForTransactionError(txnErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		statusCode := http.StatusBadRequest
		if projectErr.Code == domainerror.ErrCodeProjectNotFound ||
			projectErr.Code == domainerror.ErrCodeNotAuthorizedProject ||
			projectErr.Code == domainerror.ErrCodeContractPeriodNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

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

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTransactionDocumentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateTransaction:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeTransactionDateRequired,
		domainerror.ErrCodeDateAndPeriodExclusive,
		domainerror.ErrCodeInvalidTransactionPeriod,
		domainerror.ErrCodeDateBeforeContractStart,
		domainerror.ErrCodeSupplierRequired,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnSupplierNotFound,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeGroupRowsRequired,
		domainerror.ErrCodeGroupRowsInvalid,
		domainerror.ErrCodeSubProjectRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
