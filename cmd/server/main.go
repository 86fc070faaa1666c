package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/http2"

	"filings-qa/internal/adapter/httpapi"
	"filings-qa/internal/di"
	"filings-qa/internal/infra"
	"filings-qa/internal/infra/config"
	"filings-qa/internal/infra/logger"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.NewWithOTel(cfg.OTelLogs)
	slog.SetDefault(log)

	// 3. Initialize DB (pgvector backend only)
	var dbPool *pgxpool.Pool
	if cfg.SearchBackend == config.SearchBackendPgvector {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		pool, err := infra.NewPostgresDB(context.Background(), dsn)
		if err != nil {
			log.Error("failed to connect to db", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		dbPool = pool
	}

	// 4. Wire Components
	components, err := di.NewApplicationComponents(cfg, dbPool, log)
	if err != nil {
		log.Error("failed to wire components", "error", err)
		os.Exit(1)
	}

	// 5. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	// 6. Register Handlers
	handler := httpapi.NewHandler(components.RetrieveUsecase, components.AnswerUsecase, log)
	handler.Register(e)

	// 7. Health Checks
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if dbPool != nil {
			if err := dbPool.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 8. Start Server (h2c so in-cluster callers can use HTTP/2 without TLS)
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr, "search_backend", cfg.SearchBackend)
		if err := e.StartH2CServer(addr, &http2.Server{}); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
