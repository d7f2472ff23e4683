// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/financaspro/backend/config"
	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/application/usecase/dashboard"
	"github.com/financaspro/backend/internal/application/usecase/goal"
	"github.com/financaspro/backend/internal/application/usecase/recurring"
	"github.com/financaspro/backend/internal/application/usecase/transaction"
	"github.com/financaspro/backend/internal/infra/server/router"
	"github.com/financaspro/backend/internal/integration/adapters"
	"github.com/financaspro/backend/internal/integration/cache"
	"github.com/financaspro/backend/internal/integration/email"
	"github.com/financaspro/backend/internal/integration/email/templates"
	"github.com/financaspro/backend/internal/integration/entrypoint/controller"
	"github.com/financaspro/backend/internal/integration/entrypoint/middleware"
	"github.com/financaspro/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The email worker is returned unstarted; callers decide whether to run it.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, emailSender adapter.EmailSender) (*Injector, error) {
	// Repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters
	sessionService := adapters.NewSessionService(cfg.Session.Secret)
	overviewCache := cache.NewOverviewCache(redisClient, cfg.Dashboard.CacheTTL)

	// Use cases
	materializeUseCase := recurring.NewMaterializeUseCase(transactionRepo)

	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	exportCSVUseCase := transaction.NewExportCSVUseCase(transactionRepo)

	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	depositGoalUseCase := goal.NewDepositGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	getOverviewUseCase := dashboard.NewGetOverviewUseCase(
		transactionRepo,
		goalRepo,
		emailQueueRepo,
		materializeUseCase,
		cfg.Dashboard.WindowMonths,
	)

	// Controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return redisClient.Ping(context.Background()).Err() == nil
		},
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		exportCSVUseCase,
		overviewCache,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		updateGoalUseCase,
		depositGoalUseCase,
		deleteGoalUseCase,
		overviewCache,
	)

	dashboardController := controller.NewDashboardController(
		getOverviewUseCase,
		overviewCache,
	)

	// Middleware. Test environments get a far higher budget so suites
	// don't trip the limiter.
	var mutationRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		mutationRateLimiter = middleware.NewRateLimiterWithConfig(10000, 1*time.Minute)
	} else {
		mutationRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	r := router.NewRouter(
		healthController,
		transactionController,
		goalController,
		dashboardController,
		mutationRateLimiter,
		authMiddleware,
	)

	// Email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	worker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: worker,
	}, nil
}
