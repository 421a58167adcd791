package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/usecase/report"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report generation endpoints.
type ReportController struct {
	projectReportUseCase  *report.GenerateProjectReportUseCase
	supplierReportUseCase *report.GenerateSupplierReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	projectReportUseCase *report.GenerateProjectReportUseCase,
	supplierReportUseCase *report.GenerateSupplierReportUseCase,
) *ReportController {
	return &ReportController{
		projectReportUseCase:  projectReportUseCase,
		supplierReportUseCase: supplierReportUseCase,
	}
}

// GenerateProjectReport handles POST /reports/project/custom-report requests.
// The rendered file is returned as an attachment.
func (c *ReportController) GenerateProjectReport(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ProjectReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidReportFormat),
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

	spec, ok := c.bindWindow(ctx, req.Mode, req.Month, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := report.GenerateProjectReportInput{
		ProjectID:           projectID,
		UserID:              userID,
		Window:              spec,
		Format:              req.Format,
		IncludeTransactions: req.IncludeTransactions == nil || *req.IncludeTransactions,
		IncludeBudgets:      req.IncludeBudgets,
		IncludeFund:         req.IncludeFund,
		IncludeDocuments:    req.IncludeDocuments,
	}

	output, err := c.projectReportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// GenerateSupplierReport handles POST /reports/supplier/:id/custom-report requests.
func (c *ReportController) GenerateSupplierReport(ctx *gin.Context) {
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

	var req dto.SupplierReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidReportFormat),
		})
		return
	}

	spec, ok := c.bindWindow(ctx, req.Mode, req.Month, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := report.GenerateSupplierReportInput{
		SupplierID:       supplierID,
		UserID:           userID,
		Window:           spec,
		Format:           req.Format,
		IncludeDocuments: req.IncludeDocuments,
	}

	output, err := c.supplierReportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// bindWindow parses the window fields of a report request. Returns false
// after writing the error response.
func (c *ReportController) bindWindow(ctx *gin.Context, mode, month string, startDate, endDate *string) (valueobject.WindowSpec, bool) {
	spec := valueobject.WindowSpec{
		Mode:  valueobject.WindowMode(mode),
		Month: month,
	}

	if startDate != nil && *startDate != "" {
		parsed, err := time.Parse("2006-01-02", *startDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportWindow),
			})
			return spec, false
		}
		spec.Start = &parsed
	}
	if endDate != nil && *endDate != "" {
		parsed, err := time.Parse("2006-01-02", *endDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidReportWindow),
			})
			return spec, false
		}
		spec.End = &parsed
	}

	return spec, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		statusCode := http.StatusInternalServerError
		if reportErr.Code == domainerror.ErrCodeInvalidReportFormat ||
			reportErr.Code == domainerror.ErrCodeInvalidReportWindow {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
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

	var supplierErr *domainerror.SupplierError
	if errors.As(err, &supplierErr) {
		statusCode := http.StatusBadRequest
		if supplierErr.Code == domainerror.ErrCodeSupplierNotFound ||
			supplierErr.Code == domainerror.ErrCodeNotAuthorizedSupplier {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: supplierErr.Message,
			Code:  string(supplierErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
