package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/usecase/project"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// ProjectController handles project endpoints.
type ProjectController struct {
	createUseCase      *project.CreateProjectUseCase
	getUseCase         *project.GetProjectUseCase
	listUseCase        *project.ListProjectsUseCase
	listSubsUseCase    *project.ListSubProjectsUseCase
	updateUseCase      *project.UpdateProjectUseCase
	archiveUseCase     *project.ArchiveProjectUseCase
	deleteUseCase      *project.DeleteProjectUseCase
	renewUseCase       *project.RenewContractUseCase
	listPeriodsUseCase *project.ListContractPeriodsUseCase
	overviewUseCase    *project.GetProjectOverviewUseCase
	uploadAssetUseCase *project.UploadProjectAssetUseCase
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	createUseCase *project.CreateProjectUseCase,
	getUseCase *project.GetProjectUseCase,
	listUseCase *project.ListProjectsUseCase,
	listSubsUseCase *project.ListSubProjectsUseCase,
	updateUseCase *project.UpdateProjectUseCase,
	archiveUseCase *project.ArchiveProjectUseCase,
	deleteUseCase *project.DeleteProjectUseCase,
	renewUseCase *project.RenewContractUseCase,
	listPeriodsUseCase *project.ListContractPeriodsUseCase,
	overviewUseCase *project.GetProjectOverviewUseCase,
	uploadAssetUseCase *project.UploadProjectAssetUseCase,
) *ProjectController {
	return &ProjectController{
		createUseCase:      createUseCase,
		getUseCase:         getUseCase,
		listUseCase:        listUseCase,
		listSubsUseCase:    listSubsUseCase,
		updateUseCase:      updateUseCase,
		archiveUseCase:     archiveUseCase,
		deleteUseCase:      deleteUseCase,
		renewUseCase:       renewUseCase,
		listPeriodsUseCase: listPeriodsUseCase,
		overviewUseCase:    overviewUseCase,
		uploadAssetUseCase: uploadAssetUseCase,
	}
}

// Create handles POST /projects requests.
func (c *ProjectController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeProjectNameRequired),
		})
		return
	}

	input := project.CreateProjectInput{
		UserID:                 userID,
		Name:                   req.Name,
		Description:            req.Description,
		IsParent:               req.IsParent,
		MonthlyBudget:          decimal.NewFromFloat(req.MonthlyBudget),
		AnnualBudget:           decimal.NewFromFloat(req.AnnualBudget),
		ContractDurationMonths: req.ContractDurationMonths,
		HasFund:                req.HasFund,
		MonthlyFundAmount:      decimal.NewFromFloat(req.MonthlyFundAmount),
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent project ID",
				Code:  string(domainerror.ErrCodeParentProjectNotFound),
			})
			return
		}
		input.ParentID = &parentID
	}
	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeProjectNameRequired),
			})
			return
		}
		input.StartDate = &startDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ProjectWithPeriodsResponse{
		Project: dto.ToProjectResponse(output.Project),
		Periods: dto.ToContractPeriodResponses(output.Periods),
	})
}

// Get handles GET /projects/:id requests.
func (c *ProjectController) Get(ctx *gin.Context) {
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

	output, err := c.getUseCase.Execute(ctx.Request.Context(), project.GetProjectInput{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project))
}

// List handles GET /projects requests.
func (c *ProjectController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := project.ListProjectsInput{
		UserID:          userID,
		IncludeArchived: ctx.Query("include_archived") == "true",
		ParentsOnly:     ctx.Query("parents_only") == "true",
		Search:          ctx.Query("search"),
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve projects",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(output.Projects))
}

// ListSubProjects handles GET /projects/:id/subprojects requests.
func (c *ProjectController) ListSubProjects(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	parentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid project ID",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	output, err := c.listSubsUseCase.Execute(ctx.Request.Context(), project.ListSubProjectsInput{
		ParentID: parentID,
		UserID:   userID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(output.SubProjects))
}

// Update handles PUT /projects/:id requests.
func (c *ProjectController) Update(ctx *gin.Context) {
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

	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeProjectNameRequired),
		})
		return
	}

	input := project.UpdateProjectInput{
		ProjectID:   projectID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		HasFund:     req.HasFund,
	}
	if req.MonthlyBudget != nil {
		monthlyBudget := decimal.NewFromFloat(*req.MonthlyBudget)
		input.MonthlyBudget = &monthlyBudget
	}
	if req.AnnualBudget != nil {
		annualBudget := decimal.NewFromFloat(*req.AnnualBudget)
		input.AnnualBudget = &annualBudget
	}
	if req.MonthlyFundAmount != nil {
		monthlyFundAmount := decimal.NewFromFloat(*req.MonthlyFundAmount)
		input.MonthlyFundAmount = &monthlyFundAmount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project))
}

// Archive handles POST /projects/:id/archive requests.
func (c *ProjectController) Archive(ctx *gin.Context) {
	c.setArchived(ctx, false)
}

// Unarchive handles POST /projects/:id/unarchive requests.
func (c *ProjectController) Unarchive(ctx *gin.Context) {
	c.setArchived(ctx, true)
}

func (c *ProjectController) setArchived(ctx *gin.Context, unarchive bool) {
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

	output, err := c.archiveUseCase.Execute(ctx.Request.Context(), project.ArchiveProjectInput{
		ProjectID: projectID,
		UserID:    userID,
		Unarchive: unarchive,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project))
}

// Delete handles DELETE /projects/:id requests. The account password must be
// supplied in the body; deletion cascades to the project's data.
func (c *ProjectController) Delete(ctx *gin.Context) {
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

	var req dto.DeleteProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Password confirmation required",
			Code:  string(domainerror.ErrCodeDeletePasswordRequired),
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), project.DeleteProjectInput{
		ProjectID: projectID,
		UserID:    userID,
		Password:  req.Password,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Renew handles POST /projects/:id/renew requests.
func (c *ProjectController) Renew(ctx *gin.Context) {
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

	var req dto.RenewContractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidContractDuration),
		})
		return
	}

	input := project.RenewContractInput{
		ProjectID:      projectID,
		UserID:         userID,
		DurationMonths: req.DurationMonths,
	}
	if req.EffectivePeriodID != nil && *req.EffectivePeriodID != "" {
		periodID, err := uuid.Parse(*req.EffectivePeriodID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid effective period ID",
				Code:  string(domainerror.ErrCodeContractPeriodNotFound),
			})
			return
		}
		input.EffectivePeriodID = &periodID
	}

	output, err := c.renewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProjectWithPeriodsResponse{
		Project: dto.ToProjectResponse(output.Project),
		Periods: dto.ToContractPeriodResponses(output.Periods),
	})
}

// ListContractPeriods handles GET /projects/:id/contract-periods requests.
func (c *ProjectController) ListContractPeriods(ctx *gin.Context) {
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

	output, err := c.listPeriodsUseCase.Execute(ctx.Request.Context(), project.ListContractPeriodsInput{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	response := dto.ContractPeriodListResponse{
		Periods: dto.ToContractPeriodResponses(output.Periods),
	}
	if output.CurrentPeriodID != nil {
		currentIDStr := output.CurrentPeriodID.String()
		response.CurrentPeriodID = &currentIDStr
	}

	ctx.JSON(http.StatusOK, response)
}

// Overview handles GET /projects/:id/overview requests.
func (c *ProjectController) Overview(ctx *gin.Context) {
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

	input := project.GetProjectOverviewInput{
		ProjectID: projectID,
		UserID:    userID,
	}
	if viewingPeriodStr := ctx.Query("viewing_period_id"); viewingPeriodStr != "" {
		viewingPeriodID, err := uuid.Parse(viewingPeriodStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid viewing period ID",
				Code:  string(domainerror.ErrCodeContractPeriodNotFound),
			})
			return
		}
		input.ViewingPeriodID = &viewingPeriodID
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectOverviewResponse(output))
}

// UploadImage handles POST /projects/:id/image requests.
func (c *ProjectController) UploadImage(ctx *gin.Context) {
	c.uploadAsset(ctx, project.AssetKindImage)
}

// UploadContract handles POST /projects/:id/contract requests.
func (c *ProjectController) UploadContract(ctx *gin.Context) {
	c.uploadAsset(ctx, project.AssetKindContract)
}

func (c *ProjectController) uploadAsset(ctx *gin.Context, kind project.AssetKind) {
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

	output, err := c.uploadAssetUseCase.Execute(ctx.Request.Context(), project.UploadProjectAssetInput{
		ProjectID:   projectID,
		UserID:      userID,
		Kind:        kind,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProjectAssetResponse{
		Project: dto.ToProjectResponse(output.Project),
		URL:     output.URL,
	})
}

// handleProjectError handles project errors and returns appropriate HTTP responses.
func (c *ProjectController) handleProjectError(ctx *gin.Context, err error) {
	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		statusCode := c.getStatusCodeForProjectError(projectErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		// Password confirmation failures on delete surface as auth errors.
		statusCode := http.StatusForbidden
		if authErr.Code == domainerror.ErrCodeUserNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
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

// getStatusCodeForProjectError maps project error codes to HTTP status codes.
func (c *ProjectController) getStatusCodeForProjectError(code domainerror.ProjectErrorCode) int {
	switch code {
	case domainerror.ErrCodeProjectNotFound,
		domainerror.ErrCodeNotAuthorizedProject,
		domainerror.ErrCodeParentProjectNotFound,
		domainerror.ErrCodeContractPeriodNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeProjectNameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeProjectNameRequired,
		domainerror.ErrCodeInvalidContractDuration,
		domainerror.ErrCodeNotAParentProject,
		domainerror.ErrCodeSubProjectCannotBeParent,
		domainerror.ErrCodeProjectArchived,
		domainerror.ErrCodeProjectHasNoStartDate,
		domainerror.ErrCodeDeletePasswordRequired:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
