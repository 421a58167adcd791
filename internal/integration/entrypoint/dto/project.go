package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/project"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// CreateProjectRequest represents the request body for project creation.
type CreateProjectRequest struct {
	Name                   string  `json:"name" binding:"required,min=1,max=255"`
	Description            string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	ParentID               *string `json:"parent_id,omitempty"`
	IsParent               bool    `json:"is_parent,omitempty"`
	MonthlyBudget          float64 `json:"monthly_budget,omitempty"`
	AnnualBudget           float64 `json:"annual_budget,omitempty"`
	StartDate              *string `json:"start_date,omitempty"`
	ContractDurationMonths int     `json:"contract_duration_months,omitempty"`
	HasFund                bool    `json:"has_fund,omitempty"`
	MonthlyFundAmount      float64 `json:"monthly_fund_amount,omitempty"`
}

// UpdateProjectRequest represents the request body for project update.
type UpdateProjectRequest struct {
	Name              *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description       *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	MonthlyBudget     *float64 `json:"monthly_budget,omitempty"`
	AnnualBudget      *float64 `json:"annual_budget,omitempty"`
	HasFund           *bool    `json:"has_fund,omitempty"`
	MonthlyFundAmount *float64 `json:"monthly_fund_amount,omitempty"`
}

// DeleteProjectRequest represents the request body for project deletion.
// Deletion is destructive and requires the account password.
type DeleteProjectRequest struct {
	Password string `json:"password" binding:"required"`
}

// RenewContractRequest represents the request body for a contract renewal.
type RenewContractRequest struct {
	DurationMonths    int     `json:"duration_months,omitempty"`
	EffectivePeriodID *string `json:"effective_period_id,omitempty"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	ParentID               *string   `json:"parent_id,omitempty"`
	IsParent               bool      `json:"is_parent"`
	MonthlyBudget          string    `json:"monthly_budget"`
	AnnualBudget           string    `json:"annual_budget"`
	StartDate              *string   `json:"start_date,omitempty"`
	EndDate                *string   `json:"end_date,omitempty"`
	ContractDurationMonths int       `json:"contract_duration_months"`
	HasFund                bool      `json:"has_fund"`
	MonthlyFundAmount      string    `json:"monthly_fund_amount"`
	ImageURL               string    `json:"image_url,omitempty"`
	ContractURL            string    `json:"contract_url,omitempty"`
	Archived               bool      `json:"archived"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ContractPeriodResponse represents a contract period in API responses.
type ContractPeriodResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	ContractYear string `json:"contract_year"`
	YearIndex    int    `json:"year_index"`
}

// ProjectWithPeriodsResponse represents a project together with its contract periods.
type ProjectWithPeriodsResponse struct {
	Project ProjectResponse          `json:"project"`
	Periods []ContractPeriodResponse `json:"periods"`
}

// ProjectListResponse represents the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ContractPeriodListResponse represents the response for listing contract periods.
type ContractPeriodListResponse struct {
	Periods         []ContractPeriodResponse `json:"periods"`
	CurrentPeriodID *string                  `json:"current_period_id,omitempty"`
}

// ProjectAssetResponse represents the response after uploading a project asset.
type ProjectAssetResponse struct {
	Project ProjectResponse `json:"project"`
	URL     string          `json:"url"`
}

// WindowResponse represents a resolved reporting window in API responses.
type WindowResponse struct {
	Mode      string `json:"mode"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// OverviewFundResponse represents the fund state in the project overview.
type OverviewFundResponse struct {
	Balance           string `json:"balance"`
	MonthlyAmount     string `json:"monthly_amount"`
	IsNegative        bool   `json:"is_negative"`
	LastAccruedPeriod string `json:"last_accrued_period,omitempty"`
}

// BudgetProgressResponse represents a category budget's progress in API responses.
type BudgetProgressResponse struct {
	BudgetID       string `json:"budget_id"`
	CategoryID     string `json:"category_id"`
	CategoryName   string `json:"category_name"`
	PeriodType     string `json:"period_type"`
	Amount         string `json:"amount"`
	Spent          string `json:"spent"`
	Remaining      string `json:"remaining"`
	ExpectedByTime string `json:"expected_by_time"`
	PercentUsed    string `json:"percent_used"`
	OverBudget     bool   `json:"over_budget"`
	WindowStart    string `json:"window_start"`
	WindowEnd      string `json:"window_end"`
}

// ProjectOverviewResponse represents the combined project overview payload.
type ProjectOverviewResponse struct {
	Project        ProjectResponse          `json:"project"`
	Periods        []ContractPeriodResponse `json:"periods"`
	CurrentPeriod  *ContractPeriodResponse  `json:"current_period,omitempty"`
	SelectedPeriod *ContractPeriodResponse  `json:"selected_period,omitempty"`
	Fund           *OverviewFundResponse    `json:"fund,omitempty"`
	Budgets        []BudgetProgressResponse `json:"budgets"`
	Categories     []CategoryResponse       `json:"categories"`
	Window         WindowResponse           `json:"window"`
}

// ToProjectResponse converts a ProjectOutput to a ProjectResponse DTO.
func ToProjectResponse(p *project.ProjectOutput) ProjectResponse {
	response := ProjectResponse{
		ID:                     p.ID.String(),
		UserID:                 p.UserID.String(),
		Name:                   p.Name,
		Description:            p.Description,
		IsParent:               p.IsParent,
		MonthlyBudget:          p.MonthlyBudget.String(),
		AnnualBudget:           p.AnnualBudget.String(),
		ContractDurationMonths: p.ContractDurationMonths,
		HasFund:                p.HasFund,
		MonthlyFundAmount:      p.MonthlyFundAmount.String(),
		ImageURL:               p.ImageURL,
		ContractURL:            p.ContractURL,
		Archived:               p.Archived,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}

	if p.ParentID != nil {
		parentIDStr := p.ParentID.String()
		response.ParentID = &parentIDStr
	}
	if p.StartDate != nil {
		startStr := p.StartDate.Format("2006-01-02")
		response.StartDate = &startStr
	}
	if p.EndDate != nil {
		endStr := p.EndDate.Format("2006-01-02")
		response.EndDate = &endStr
	}

	return response
}

// ToContractPeriodResponse converts a ContractPeriodOutput to its DTO.
func ToContractPeriodResponse(period *project.ContractPeriodOutput) ContractPeriodResponse {
	return ContractPeriodResponse{
		ID:           period.ID.String(),
		ProjectID:    period.ProjectID.String(),
		StartDate:    period.StartDate.Format("2006-01-02"),
		EndDate:      period.EndDate.Format("2006-01-02"),
		ContractYear: period.ContractYear,
		YearIndex:    period.YearIndex,
	}
}

// ToContractPeriodResponses converts a slice of period outputs to DTOs.
func ToContractPeriodResponses(periods []*project.ContractPeriodOutput) []ContractPeriodResponse {
	items := make([]ContractPeriodResponse, len(periods))
	for i, period := range periods {
		items[i] = ToContractPeriodResponse(period)
	}
	return items
}

// ToProjectListResponse converts project outputs to a ProjectListResponse.
func ToProjectListResponse(projects []*project.ProjectOutput) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		items[i] = ToProjectResponse(p)
	}
	return ProjectListResponse{Projects: items}
}

// ToWindowResponse converts a resolved window to its DTO.
func ToWindowResponse(w valueobject.Window) WindowResponse {
	return WindowResponse{
		Mode:      string(w.Mode),
		StartDate: w.Start.Format("2006-01-02"),
		EndDate:   w.End.Format("2006-01-02"),
	}
}

// ToBudgetProgressResponse converts a BudgetProgress entity to its DTO.
func ToBudgetProgressResponse(progress *entity.BudgetProgress) BudgetProgressResponse {
	response := BudgetProgressResponse{
		Spent:          progress.Spent.String(),
		Remaining:      progress.Remaining.String(),
		ExpectedByTime: progress.ExpectedByTime.String(),
		PercentUsed:    progress.PercentUsed.String(),
		OverBudget:     progress.OverBudget,
		WindowStart:    progress.WindowStart.Format("2006-01-02"),
		WindowEnd:      progress.WindowEnd.Format("2006-01-02"),
	}

	if progress.Budget != nil {
		response.BudgetID = progress.Budget.ID.String()
		response.PeriodType = string(progress.Budget.PeriodType)
		response.Amount = progress.Budget.Amount.String()
	}
	if progress.Category != nil {
		response.CategoryID = progress.Category.ID.String()
		response.CategoryName = progress.Category.Name
	}

	return response
}

// ToProjectOverviewResponse converts the overview output to its DTO.
func ToProjectOverviewResponse(output *project.GetProjectOverviewOutput) ProjectOverviewResponse {
	response := ProjectOverviewResponse{
		Project:    ToProjectResponse(output.Project),
		Periods:    ToContractPeriodResponses(output.Periods),
		Budgets:    make([]BudgetProgressResponse, len(output.Budgets)),
		Categories: make([]CategoryResponse, len(output.Categories)),
		Window:     ToWindowResponse(output.Window),
	}

	if output.CurrentPeriod != nil {
		current := ToContractPeriodResponse(output.CurrentPeriod)
		response.CurrentPeriod = &current
	}
	if output.SelectedPeriod != nil {
		selected := ToContractPeriodResponse(output.SelectedPeriod)
		response.SelectedPeriod = &selected
	}
	if output.Fund != nil {
		response.Fund = &OverviewFundResponse{
			Balance:           output.Fund.Balance.String(),
			MonthlyAmount:     output.Fund.MonthlyAmount.String(),
			IsNegative:        output.Fund.IsNegative,
			LastAccruedPeriod: output.Fund.LastAccruedPeriod,
		}
	}
	for i, progress := range output.Budgets {
		response.Budgets[i] = ToBudgetProgressResponse(progress)
	}
	for i, category := range output.Categories {
		response.Categories[i] = ToCategoryResponse(category)
	}

	return response
}
