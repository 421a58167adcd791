package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/usecase/fund"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// FundController handles project fund endpoints.
type FundController struct {
	getUseCase           *fund.GetFundUseCase
	ensureAccruedUseCase *fund.EnsureAccruedUseCase
}

// NewFundController creates a new fund controller instance.
func NewFundController(
	getUseCase *fund.GetFundUseCase,
	ensureAccruedUseCase *fund.EnsureAccruedUseCase,
) *FundController {
	return &FundController{
		getUseCase:           getUseCase,
		ensureAccruedUseCase: ensureAccruedUseCase,
	}
}

// Get handles GET /projects/:id/fund requests. The response carries the fund
// together with a page of its movement history.
func (c *FundController) Get(ctx *gin.Context) {
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

	input := fund.GetFundInput{
		ProjectID: projectID,
		UserID:    userID,
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

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFundError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFundDetailResponse(output))
}

// EnsureAccrued handles POST /projects/:id/fund/ensure-accrued requests,
// crediting any monthly amounts the fund has missed.
func (c *FundController) EnsureAccrued(ctx *gin.Context) {
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

	output, err := c.ensureAccruedUseCase.Execute(ctx.Request.Context(), fund.EnsureAccruedInput{
		ProjectID: &projectID,
		UserID:    &userID,
	})
	if err != nil {
		c.handleFundError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnsureAccruedResponse{
		ProcessedFunds: output.ProcessedFunds,
		AccruedCount:   output.AccruedCount,
		FailedCount:    output.FailedCount,
	})
}

// handleFundError handles fund errors and returns appropriate HTTP responses.
func (c *FundController) handleFundError(ctx *gin.Context, err error) {
	var fundErr *domainerror.FundError
	if errors.As(err, &fundErr) {
		statusCode := c.getStatusCodeForFundError(fundErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: fundErr.Message,
			Code:  string(fundErr.Code),
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

// getStatusCodeForFundError maps fund error codes to HTTP status codes.
func (c *FundController) getStatusCodeForFundError(code domainerror.FundErrorCode) int {
	switch code {
	case domainerror.ErrCodeFundNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeFundDisabled:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
