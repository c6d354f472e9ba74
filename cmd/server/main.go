package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/app"
	"github.com/medpoint/reception/internal/config"
	controller "github.com/medpoint/reception/internal/controller/http"
	"github.com/medpoint/reception/internal/notify"
	"github.com/medpoint/reception/internal/repository"
	"github.com/medpoint/reception/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаемся к БД
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Уведомления персонала опциональны
	var notifier *notify.StaffNotifier
	if cfg.NotificationsEnabled() {
		notifier, err = notify.NewStaffNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create staff notifier", zap.Error(err))
		}
		logger.Info("Staff notifications enabled", zap.String("chat_id", cfg.TelegramChatID))
	}

	doctorRepo := repository.NewDoctorRepository(pool)
	receptionRepo := repository.NewReceptionRepository(pool)

	receptionService := service.NewReceptionService(receptionRepo, doctorRepo, notifier, logger)
	doctorService := service.NewDoctorService(doctorRepo, logger)

	// Ежедневная сводка в чат персонала
	if notifier != nil {
		digest := app.NewDigest(receptionService, notifier, logger)
		digest.Start(ctx)
		defer digest.Stop()
	}

	router := controller.NewRouter(receptionService, doctorService, cfg.Environment, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting reception service",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
