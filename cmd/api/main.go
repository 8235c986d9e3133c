package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/staffing-api/internal/config"
	"github.com/staffing-api/internal/domain"
	"github.com/staffing-api/internal/handler"
	"github.com/staffing-api/internal/repository"
	"github.com/staffing-api/internal/service"
	"github.com/staffing-api/internal/snapshot"
)

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	// Хранилище снапшотов
	store, closeStore, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open snapshot store",
			slog.String("driver", cfg.Database.Driver),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	defer closeStore()

	// Восстановление компании
	company := snapshot.Open(ctx, store, logger, cfg.Staffing.CompanyName,
		domain.WithMaxConcurrentProjects(cfg.Staffing.MaxConcurrentProjects),
		domain.WithOverloadThreshold(cfg.Staffing.OverloadThreshold),
		domain.WithSalaryCeiling(cfg.Staffing.SalaryCeiling),
	)

	svc := service.NewCompanyService(company, store, logger)
	companyHandler := handler.NewCompanyHandler(svc, logger)

	// Настройка роутера
	router := handler.NewRouter(companyHandler, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		if err := svc.Save(ctx); err != nil {
			logger.Error("failed to save snapshot on shutdown", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("company", company.Name()),
		slog.String("driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

// openStore выбирает хранилище по DB_DRIVER. Для БД прогоняет миграции.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (snapshot.Store, func(), error) {
	var (
		dialector gorm.Dialector
		dialect   string
	)
	switch cfg.Driver {
	case config.DriverFile:
		return snapshot.NewFileStore(cfg.SnapshotPath), func() {}, nil
	case config.DriverSQLite:
		dialector, dialect = sqlite.Open(cfg.SQLitePath), "sqlite3"
	case config.DriverPostgres:
		dialector, dialect = postgres.Open(cfg.DSN()), "postgres"
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}

	db, err := connectDB(dialector, logger)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}

	// Запуск миграций
	if err := repository.RunMigrations(ctx, sqlDB, dialect); err != nil {
		closeDB()
		return nil, nil, err
	}

	return repository.NewSnapshotRepository(db), closeDB, nil
}

func connectDB(dialector gorm.Dialector, logger *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := range 30 {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
		}
		logger.Warn("database is not ready", slog.Int("attempt", attempt+1), slog.Any("error", err))
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}
