// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	projectController     *controller.ProjectController
	fundController        *controller.FundController
	summaryController     *controller.SummaryController
	transactionController *controller.TransactionController
	recurringController   *controller.RecurringController
	budgetController      *controller.BudgetController
	categoryController    *controller.CategoryController
	supplierController    *controller.SupplierController
	reportController      *controller.ReportController
	uploadController      *controller.UploadController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	projectController *controller.ProjectController,
	fundController *controller.FundController,
	summaryController *controller.SummaryController,
	transactionController *controller.TransactionController,
	recurringController *controller.RecurringController,
	budgetController *controller.BudgetController,
	categoryController *controller.CategoryController,
	supplierController *controller.SupplierController,
	reportController *controller.ReportController,
	uploadController *controller.UploadController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		projectController:     projectController,
		fundController:        fundController,
		summaryController:     summaryController,
		transactionController: transactionController,
		recurringController:   recurringController,
		budgetController:      budgetController,
		categoryController:    categoryController,
		supplierController:    supplierController,
		reportController:      reportController,
		uploadController:      uploadController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes. The credential-bearing endpoints are rate limited.
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.loginRateLimiter.Limit(), r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Limit(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.loginRateLimiter.Limit(), r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
				if r.authMiddleware != nil {
					auth.POST("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
				}
			}
		}

		// Project routes (require authentication)
		if r.projectController != nil && r.authMiddleware != nil {
			projects := v1.Group("/projects")
			projects.Use(r.authMiddleware.Authenticate())
			{
				projects.POST("", r.projectController.Create)
				projects.GET("", r.projectController.List)
				projects.GET("/:id", r.projectController.Get)
				projects.PUT("/:id", r.projectController.Update)
				projects.DELETE("/:id", r.projectController.Delete)
				projects.GET("/:id/subprojects", r.projectController.ListSubProjects)
				projects.POST("/:id/archive", r.projectController.Archive)
				projects.POST("/:id/unarchive", r.projectController.Unarchive)
				projects.POST("/:id/renew", r.projectController.Renew)
				projects.GET("/:id/contract-periods", r.projectController.ListContractPeriods)
				projects.GET("/:id/overview", r.projectController.Overview)
				projects.POST("/:id/image", r.projectController.UploadImage)
				projects.POST("/:id/contract", r.projectController.UploadContract)

				if r.fundController != nil {
					projects.GET("/:id/fund", r.fundController.Get)
					projects.POST("/:id/fund/ensure-accrued", r.fundController.EnsureAccrued)
				}
				if r.summaryController != nil {
					projects.GET("/:id/financial-summary", r.summaryController.Get)
				}
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/project/:id", r.transactionController.ListByProject)
				transactions.GET("/:id", r.transactionController.Get)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/group", r.transactionController.CreateGroup)
				transactions.POST("/:id/supplier-document", r.transactionController.AttachDocument)
				transactions.POST("/:id/supplier-document/staged", r.transactionController.AttachStagedDocument)
				transactions.GET("/:id/supplier-document", r.transactionController.ListDocuments)
				transactions.GET("/:id/supplier-document/:documentId", r.transactionController.DownloadDocument)
			}
		}

		// Recurring template routes (require authentication)
		if r.recurringController != nil && r.authMiddleware != nil {
			recurring := v1.Group("/recurring-transactions")
			recurring.Use(r.authMiddleware.Authenticate())
			{
				recurring.POST("", r.recurringController.Create)
				recurring.GET("", r.recurringController.List)
				recurring.GET("/:id", r.recurringController.Get)
				recurring.PUT("/:id", r.recurringController.Update)
				recurring.DELETE("/:id", r.recurringController.Delete)
				recurring.POST("/generate-monthly", r.recurringController.GenerateMonthly)
				recurring.POST("/ensure-generated", r.recurringController.EnsureGenerated)
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.POST("", r.budgetController.Create)
				budgets.GET("", r.budgetController.List)
				budgets.GET("/:id", r.budgetController.Get)
				budgets.PUT("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
				budgets.GET("/:id/progress", r.budgetController.Progress)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.POST("", r.categoryController.Create)
				categories.GET("", r.categoryController.List)
				categories.PUT("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Supplier routes (require authentication)
		if r.supplierController != nil && r.authMiddleware != nil {
			suppliers := v1.Group("/suppliers")
			suppliers.Use(r.authMiddleware.Authenticate())
			{
				suppliers.POST("", r.supplierController.Create)
				suppliers.GET("", r.supplierController.List)
				suppliers.GET("/:id", r.supplierController.Get)
				suppliers.PUT("/:id", r.supplierController.Update)
				suppliers.DELETE("/:id", r.supplierController.Delete)
				suppliers.POST("/:id/documents", r.supplierController.UploadDocument)
				suppliers.GET("/:id/documents", r.supplierController.ListDocuments)
				suppliers.GET("/:id/documents/:documentId", r.supplierController.DownloadDocument)
			}
		}

		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.POST("/project/custom-report", r.reportController.GenerateProjectReport)
				reports.POST("/supplier/:id/custom-report", r.reportController.GenerateSupplierReport)
			}
		}

		// Staged upload routes (require authentication)
		if r.uploadController != nil && r.authMiddleware != nil {
			uploads := v1.Group("/uploads")
			uploads.Use(r.authMiddleware.Authenticate())
			{
				uploads.POST("", r.uploadController.Stage)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
