package app

import (
	"net/http"
	"time"

	"smartfinance-go/internal/config"
	"smartfinance-go/internal/db"
	accountdomain "smartfinance-go/internal/domain/account"
	budgetsdomain "smartfinance-go/internal/domain/budgets"
	goalsdomain "smartfinance-go/internal/domain/goals"
	insightsdomain "smartfinance-go/internal/domain/insights"
	transactionsdomain "smartfinance-go/internal/domain/transactions"
	"smartfinance-go/internal/repository/inmemory"
	accountrepo "smartfinance-go/internal/repository/postgres/account"
	budgetsrepo "smartfinance-go/internal/repository/postgres/budgets"
	goalsrepo "smartfinance-go/internal/repository/postgres/goals"
	insightsrepo "smartfinance-go/internal/repository/postgres/insights"
	transactionsrepo "smartfinance-go/internal/repository/postgres/transactions"
	"smartfinance-go/internal/transport/httpserver"
	"smartfinance-go/internal/transport/httpserver/handler"
	"smartfinance-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn, log); err != nil {
			closeDB(dbConn)
			return nil, err
		}
	}

	log.Info("app: initializing services")
	services := NewServices(cfg, dbConn)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handler.New(services, log), services.Accounts, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewServices builds the domain services over the Postgres repositories.
func NewServices(cfg config.Config, dbConn *gorm.DB) handler.Services {
	return handler.Services{
		Accounts: accountdomain.NewService(accountrepo.NewPostgres(dbConn)),
		Transactions: transactionsdomain.NewServiceWithCache(
			transactionsrepo.NewPostgres(dbConn),
			inmemory.NewCategoriesCache(),
			cfg.Cache.CategoriesTTL,
		),
		Budgets:  budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn)),
		Goals:    goalsdomain.NewService(goalsrepo.NewPostgres(dbConn)),
		Insights: insightsdomain.NewService(insightsrepo.NewPostgres(dbConn)),
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) ShutdownTimeout() time.Duration {
	if a.cfg.Server.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return a.cfg.Server.ShutdownTimeout
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
