package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logistics/cmd"
	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres/migrations"
	"logistics/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(logging.Config{Level: configs.LogLevel, File: configs.LogFile})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closer.Close()

	gormDB := mustConnectDB(ctx, configs)

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}
	if err := app.Start(); err != nil {
		log.Fatalf("start: %v", err)
	}

	spec, err := httpin.LoadSpec(ctx)
	if err != nil {
		log.Fatalf("openapi: %v", err)
	}
	e, err := app.NewRouter(spec)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error("application shutdown", "error", err)
	}
}

func mustConnectDB(ctx context.Context, configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if configs.DBAutoMigrate {
		if err := migrations.Up(ctx, sqlDB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	return gormDB
}
