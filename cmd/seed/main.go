package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smartfinance-go/internal/config"
	"smartfinance-go/internal/db"
	transactionsdomain "smartfinance-go/internal/domain/transactions"
	transactionsrepo "smartfinance-go/internal/repository/postgres/transactions"
	"smartfinance-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv("smartfinance-seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Critical("seed: failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := dbConn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := db.Migrate(dbConn, log); err != nil {
		return err
	}

	created, err := transactionsdomain.SeedDefaultCategories(ctx, transactionsrepo.NewPostgres(dbConn))
	for _, name := range created {
		log.Info("seed: created category", "name", name)
	}
	if err != nil {
		return err
	}

	log.Info("seed: done", "created", len(created), "total", len(transactionsdomain.DefaultCategories))
	return nil
}
