package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"

	"github.com/cida-marmitas/marmitas/internal/app"
	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/masterdata/catalog"
	"github.com/cida-marmitas/marmitas/internal/masterdata/companies"
	"github.com/cida-marmitas/marmitas/internal/masterdata/employees"
	"github.com/cida-marmitas/marmitas/internal/masterdata/menus"
	"github.com/cida-marmitas/marmitas/internal/masterdata/sectors"
	"github.com/cida-marmitas/marmitas/internal/observability"
	"github.com/cida-marmitas/marmitas/internal/orders"
	"github.com/cida-marmitas/marmitas/internal/platform/cache"
	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/reports"
	"github.com/cida-marmitas/marmitas/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	clock := civil.NewZoneClock(cfg.Location())

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, cfg.EmployeeTokenTTL, clock)
	if err != nil {
		logger.Error("token issuer", slog.Any("error", err))
		os.Exit(1)
	}
	authService := auth.NewService(auth.NewRepository(dbpool), tokens, clock)

	companyService := companies.NewService(companies.NewRepository(dbpool))
	sectorService := sectors.NewService(sectors.NewRepository(dbpool))
	catalogService := catalog.NewService(
		catalog.NewRepository(dbpool),
		cache.NewVersioned(redisClient, "catalog", cfg.CatalogCacheTTL).WithLogger(logger),
		logger,
	)
	menuService := menus.NewService(menus.NewRepository(dbpool))
	employeeService := employees.NewService(employees.NewRepository(dbpool), logger)
	userService := users.NewService(users.NewRepository(dbpool))

	orderService := orders.NewService(
		orders.NewRepository(dbpool),
		sectorService,
		menuService,
		catalogService,
		clock,
		orders.WithRecorder(metrics),
		orders.WithLogger(logger),
	)
	reportService := reports.NewService(reports.NewRepository(dbpool), metrics, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   auth.Middleware{Tokens: tokens, Logger: logger},
		AuthHandler:      auth.NewHandler(logger, authService),
		OrdersHandler:    orders.NewHandler(logger, orderService),
		ReportsHandler:   reports.NewHandler(logger, reportService),
		CompaniesHandler: companies.NewHandler(logger, companyService),
		SectorsHandler:   sectors.NewHandler(logger, sectorService),
		CatalogHandler:   catalog.NewHandler(logger, catalogService),
		MenusHandler:     menus.NewHandler(logger, menuService),
		EmployeesHandler: employees.NewHandler(logger, employeeService, cfg.ImportMaxBytes),
		UsersHandler:     users.NewHandler(logger, userService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("timezone", cfg.Location().String()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
