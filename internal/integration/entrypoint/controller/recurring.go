package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/usecase/recurring"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring template endpoints.
type RecurringController struct {
	createUseCase          *recurring.CreateTemplateUseCase
	getUseCase             *recurring.GetTemplateUseCase
	listUseCase            *recurring.ListTemplatesUseCase
	updateUseCase          *recurring.UpdateTemplateUseCase
	deleteUseCase          *recurring.DeleteTemplateUseCase
	generateMonthlyUseCase *recurring.GenerateMonthlyUseCase
	ensureGeneratedUseCase *recurring.EnsureGeneratedUseCase
}

// NewRecurringController creates a new recurring template controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateTemplateUseCase,
	getUseCase *recurring.GetTemplateUseCase,
	listUseCase *recurring.ListTemplatesUseCase,
	updateUseCase *recurring.UpdateTemplateUseCase,
	deleteUseCase *recurring.DeleteTemplateUseCase,
	generateMonthlyUseCase *recurring.GenerateMonthlyUseCase,
	ensureGeneratedUseCase *recurring.EnsureGeneratedUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:          createUseCase,
		getUseCase:             getUseCase,
		listUseCase:            listUseCase,
		updateUseCase:          updateUseCase,
		deleteUseCase:          deleteUseCase,
		generateMonthlyUseCase: generateMonthlyUseCase,
		ensureGeneratedUseCase: ensureGeneratedUseCase,
	}
}

// Create handles POST /recurring-transactions requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRecurringTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidEndCondition),
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

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeRecurringDateGuard),
		})
		return
	}

	endCondition := entity.RecurringEndCondition(req.EndCondition)
	if req.EndCondition == "" {
		endCondition = entity.RecurringEndNever
	}

	input := recurring.CreateTemplateInput{
		UserID:          userID,
		ProjectID:       projectID,
		Type:            entity.TransactionType(req.Type),
		Amount:          decimal.NewFromFloat(req.Amount),
		Description:     req.Description,
		DayOfMonth:      req.DayOfMonth,
		StartDate:       startDate,
		EndCondition:    endCondition,
		OccurrenceLimit: req.OccurrenceLimit,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.SupplierID != nil && *req.SupplierID != "" {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid supplier ID",
				Code:  string(domainerror.ErrCodeTxnSupplierNotFound),
			})
			return
		}
		input.SupplierID = &supplierID
	}
	if req.UntilDate != nil && *req.UntilDate != "" {
		untilDate, err := time.Parse("2006-01-02", *req.UntilDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid until date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidEndCondition),
			})
			return
		}
		input.UntilDate = &untilDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringTemplateResponse(output.Template))
}

// Get handles GET /recurring-transactions/:id requests.
func (c *RecurringController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID",
			Code:  string(domainerror.ErrCodeRecurringTemplateNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), recurring.GetTemplateInput{
		TemplateID: templateID,
		UserID:     userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(output.Template))
}

// List handles GET /recurring-transactions requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := recurring.ListTemplatesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	}

	if projectIDStr := ctx.Query("project_id"); projectIDStr != "" {
		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid project ID",
				Code:  string(domainerror.ErrCodeProjectNotFound),
			})
			return
		}
		input.ProjectID = &projectID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateListResponse(output.Templates))
}

// Update handles PUT /recurring-transactions/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID",
			Code:  string(domainerror.ErrCodeRecurringTemplateNotFound),
		})
		return
	}

	var req dto.UpdateRecurringTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidEndCondition),
		})
		return
	}

	input := recurring.UpdateTemplateInput{
		TemplateID:      templateID,
		UserID:          userID,
		ClearCategory:   req.ClearCategory,
		ClearSupplier:   req.ClearSupplier,
		Description:     req.Description,
		DayOfMonth:      req.DayOfMonth,
		OccurrenceLimit: req.OccurrenceLimit,
		ClearUntilDate:  req.ClearUntilDate,
		IsActive:        req.IsActive,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.SupplierID != nil && *req.SupplierID != "" {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid supplier ID",
				Code:  string(domainerror.ErrCodeTxnSupplierNotFound),
			})
			return
		}
		input.SupplierID = &supplierID
	}
	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeRecurringDateGuard),
			})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndCondition != nil {
		endCondition := entity.RecurringEndCondition(*req.EndCondition)
		input.EndCondition = &endCondition
	}
	if req.UntilDate != nil && *req.UntilDate != "" {
		untilDate, err := time.Parse("2006-01-02", *req.UntilDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid until date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidEndCondition),
			})
			return
		}
		input.UntilDate = &untilDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(output.Template))
}

// Delete handles DELETE /recurring-transactions/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID",
			Code:  string(domainerror.ErrCodeRecurringTemplateNotFound),
		})
		return
	}

	input := recurring.DeleteTemplateInput{
		TemplateID: templateID,
		UserID:     userID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GenerateMonthly handles POST /recurring-transactions/generate-monthly requests.
func (c *RecurringController) GenerateMonthly(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.GenerateMonthlyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidGenerationPeriod),
		})
		return
	}

	output, err := c.generateMonthlyUseCase.Execute(ctx.Request.Context(), recurring.GenerateMonthlyInput{
		UserID: userID,
		Period: req.Period,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGenerateMonthlyResponse(output))
}

// EnsureGenerated handles POST /recurring-transactions/ensure-generated requests.
// It backfills instances for every month the caller's templates missed.
func (c *RecurringController) EnsureGenerated(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.ensureGeneratedUseCase.Execute(ctx.Request.Context(), recurring.EnsureGeneratedInput{
		UserID: &userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnsureGeneratedResponse{
		ProcessedTemplates: output.ProcessedTemplates,
		GeneratedCount:     output.GeneratedCount,
		FailedCount:        output.FailedCount,
	})
}

// handleRecurringError handles recurring template errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recurringErr *domainerror.RecurringError
	if errors.As(err, &recurringErr) {
		statusCode := c.getStatusCodeForRecurringError(recurringErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recurringErr.Message,
			Code:  string(recurringErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := http.StatusBadRequest
		if txnErr.Code == domainerror.ErrCodeTxnCategoryNotFound ||
			txnErr.Code == domainerror.ErrCodeTxnSupplierNotFound {
			statusCode = http.StatusNotFound
		}
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
			projectErr.Code == domainerror.ErrCodeNotAuthorizedProject {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringTemplateNotFound,
		domainerror.ErrCodeNotAuthorizedTemplate:
		return http.StatusNotFound
	case domainerror.ErrCodeTemplateInactive:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeInvalidEndCondition,
		domainerror.ErrCodeRecurringDateGuard,
		domainerror.ErrCodeInvalidGenerationPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
