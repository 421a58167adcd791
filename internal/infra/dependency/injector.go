// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	"github.com/property-ledger/backend/internal/application/usecase/auth"
	"github.com/property-ledger/backend/internal/application/usecase/budget"
	"github.com/property-ledger/backend/internal/application/usecase/category"
	"github.com/property-ledger/backend/internal/application/usecase/fund"
	"github.com/property-ledger/backend/internal/application/usecase/project"
	"github.com/property-ledger/backend/internal/application/usecase/recurring"
	"github.com/property-ledger/backend/internal/application/usecase/report"
	"github.com/property-ledger/backend/internal/application/usecase/summary"
	"github.com/property-ledger/backend/internal/application/usecase/supplier"
	"github.com/property-ledger/backend/internal/application/usecase/transaction"
	"github.com/property-ledger/backend/internal/application/usecase/upload"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/infra/server/router"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/cache"
	"github.com/property-ledger/backend/internal/integration/email"
	"github.com/property-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/property-ledger/backend/internal/integration/persistence"
	reportrender "github.com/property-ledger/backend/internal/integration/report"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// Exposed for the email worker and the background scheduler, which are
	// started from main rather than from the HTTP layer.
	EmailQueueRepo  adapter.EmailQueueRepository
	EnsureGenerated *recurring.EnsureGeneratedUseCase
	EnsureAccrued   *fund.EnsureAccruedUseCase
	LockService     adapter.LockService
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient and objectStorage may be nil; the affected features degrade
// (no reference caching, no distributed job locks, no file endpoints backing).
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, objectStorage adapter.ObjectStorage) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	supplierRepo := persistence.NewSupplierRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	periodRepo := persistence.NewContractPeriodRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	recurringRepo := persistence.NewRecurringTemplateRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	fundRepo := persistence.NewFundRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Domain event bus, used to invalidate reference caches on writes.
	bus := event.NewBus(slog.Default())

	// Wrap the reference repositories with Redis-backed caches when Redis
	// is available.
	var lockService adapter.LockService
	if redisClient != nil {
		referenceCache := cache.NewRedisReferenceCache(redisClient)
		categoryRepo = cache.NewCachedCategoryRepository(categoryRepo, referenceCache, cfg.Redis.CacheTTL)
		supplierRepo = cache.NewCachedSupplierRepository(supplierRepo, referenceCache, cfg.Redis.CacheTTL)
		cache.RegisterInvalidation(bus, referenceCache)
		lockService = adapters.NewRedisLockService(redisClient)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Report renderers. The ZIP renderer bundles stored attachments, so it
	// is only offered when object storage is available.
	excelRenderer := reportrender.NewExcelRenderer()
	pdfRenderer := reportrender.NewPDFRenderer()
	renderers := map[adapter.ReportFormat]adapter.ReportRenderer{
		adapter.ReportFormatExcel: excelRenderer,
		adapter.ReportFormatPDF:   pdfRenderer,
	}
	if objectStorage != nil {
		renderers[adapter.ReportFormatZIP] = reportrender.NewZIPRenderer(excelRenderer, pdfRenderer, objectStorage)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)
	changePasswordUseCase := auth.NewChangePasswordUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, bus)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, bus)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, bus)

	// Create supplier use cases
	createSupplierUseCase := supplier.NewCreateSupplierUseCase(supplierRepo, bus)
	getSupplierUseCase := supplier.NewGetSupplierUseCase(supplierRepo)
	listSuppliersUseCase := supplier.NewListSuppliersUseCase(supplierRepo)
	updateSupplierUseCase := supplier.NewUpdateSupplierUseCase(supplierRepo, bus)
	deleteSupplierUseCase := supplier.NewDeleteSupplierUseCase(supplierRepo, bus)
	uploadSupplierDocUseCase := supplier.NewUploadDocumentUseCase(supplierRepo, objectStorage)
	listSupplierDocsUseCase := supplier.NewListDocumentsUseCase(supplierRepo)
	downloadSupplierDocUseCase := supplier.NewDownloadDocumentUseCase(supplierRepo, objectStorage)

	// Create project use cases
	createProjectUseCase := project.NewCreateProjectUseCase(projectRepo, periodRepo, fundRepo)
	getProjectUseCase := project.NewGetProjectUseCase(projectRepo)
	listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
	listSubProjectsUseCase := project.NewListSubProjectsUseCase(projectRepo)
	updateProjectUseCase := project.NewUpdateProjectUseCase(projectRepo, fundRepo)
	archiveProjectUseCase := project.NewArchiveProjectUseCase(projectRepo)
	deleteProjectUseCase := project.NewDeleteProjectUseCase(
		projectRepo,
		periodRepo,
		transactionRepo,
		recurringRepo,
		budgetRepo,
		fundRepo,
		userRepo,
		passwordService,
		bus,
	)
	renewContractUseCase := project.NewRenewContractUseCase(projectRepo, periodRepo)
	listContractPeriodsUseCase := project.NewListContractPeriodsUseCase(projectRepo, periodRepo)
	projectOverviewUseCase := project.NewGetProjectOverviewUseCase(projectRepo, periodRepo, fundRepo, budgetRepo, categoryRepo, transactionRepo)
	uploadProjectAssetUseCase := project.NewUploadProjectAssetUseCase(projectRepo, objectStorage)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, projectRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, projectRepo, periodRepo, categoryRepo, supplierRepo, fundRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, projectRepo, categoryRepo, supplierRepo, fundRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, fundRepo)
	attachDocumentUseCase := transaction.NewAttachDocumentUseCase(transactionRepo, objectStorage)
	attachStagedDocumentUseCase := transaction.NewAttachStagedDocumentUseCase(transactionRepo, objectStorage)
	createGroupUseCase := transaction.NewCreateGroupTransactionsUseCase(createTransactionUseCase, attachStagedDocumentUseCase, projectRepo, categoryRepo)
	listTransactionDocsUseCase := transaction.NewListDocumentsUseCase(transactionRepo)
	downloadTransactionDocUseCase := transaction.NewDownloadDocumentUseCase(transactionRepo, objectStorage)

	// Create recurring template use cases
	createTemplateUseCase := recurring.NewCreateTemplateUseCase(recurringRepo, projectRepo, categoryRepo, supplierRepo)
	getTemplateUseCase := recurring.NewGetTemplateUseCase(recurringRepo)
	listTemplatesUseCase := recurring.NewListTemplatesUseCase(recurringRepo)
	updateTemplateUseCase := recurring.NewUpdateTemplateUseCase(recurringRepo, projectRepo, categoryRepo, supplierRepo)
	deleteTemplateUseCase := recurring.NewDeleteTemplateUseCase(recurringRepo)
	generateMonthlyUseCase := recurring.NewGenerateMonthlyUseCase(recurringRepo, transactionRepo)
	ensureGeneratedUseCase := recurring.NewEnsureGeneratedUseCase(recurringRepo, transactionRepo)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, projectRepo, categoryRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	budgetProgressUseCase := budget.NewGetProgressUseCase(budgetRepo, categoryRepo, transactionRepo)

	// Create fund, summary, report and upload use cases
	getFundUseCase := fund.NewGetFundUseCase(projectRepo, fundRepo)
	ensureAccruedUseCase := fund.NewEnsureAccruedUseCase(projectRepo, fundRepo)
	financialSummaryUseCase := summary.NewGetFinancialSummaryUseCase(projectRepo, transactionRepo)
	projectReportUseCase := report.NewGenerateProjectReportUseCase(projectRepo, transactionRepo, budgetRepo, fundRepo, categoryRepo, supplierRepo, renderers)
	supplierReportUseCase := report.NewGenerateSupplierReportUseCase(supplierRepo, transactionRepo, categoryRepo, renderers)
	stageUploadUseCase := upload.NewStageUploadUseCase(objectStorage)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if objectStorage == nil {
				return false
			}
			// A not-found answer still proves the object store responded.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := objectStorage.Stat(ctx, "healthz")
			return err == nil || errors.Is(err, domainerror.ErrObjectNotFound)
		},
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
		changePasswordUseCase,
	)

	projectController := controller.NewProjectController(
		createProjectUseCase,
		getProjectUseCase,
		listProjectsUseCase,
		listSubProjectsUseCase,
		updateProjectUseCase,
		archiveProjectUseCase,
		deleteProjectUseCase,
		renewContractUseCase,
		listContractPeriodsUseCase,
		projectOverviewUseCase,
		uploadProjectAssetUseCase,
	)

	fundController := controller.NewFundController(
		getFundUseCase,
		ensureAccruedUseCase,
	)

	summaryController := controller.NewSummaryController(financialSummaryUseCase)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		createGroupUseCase,
		attachDocumentUseCase,
		attachStagedDocumentUseCase,
		listTransactionDocsUseCase,
		downloadTransactionDocUseCase,
	)

	recurringController := controller.NewRecurringController(
		createTemplateUseCase,
		getTemplateUseCase,
		listTemplatesUseCase,
		updateTemplateUseCase,
		deleteTemplateUseCase,
		generateMonthlyUseCase,
		ensureGeneratedUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		getBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
		budgetProgressUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	supplierController := controller.NewSupplierController(
		createSupplierUseCase,
		getSupplierUseCase,
		listSuppliersUseCase,
		updateSupplierUseCase,
		deleteSupplierUseCase,
		uploadSupplierDocUseCase,
		listSupplierDocsUseCase,
		downloadSupplierDocUseCase,
	)

	reportController := controller.NewReportController(
		projectReportUseCase,
		supplierReportUseCase,
	)

	uploadController := controller.NewUploadController(stageUploadUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiter(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(0, 0)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		projectController,
		fundController,
		summaryController,
		transactionController,
		recurringController,
		budgetController,
		categoryController,
		supplierController,
		reportController,
		uploadController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		EmailQueueRepo:  emailQueueRepo,
		EnsureGenerated: ensureGeneratedUseCase,
		EnsureAccrued:   ensureAccruedUseCase,
		LockService:     lockService,
	}
}
