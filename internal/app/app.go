package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	nethttp "net/http"

	pb "github.com/bizcoach/assessment-server/api/v1"
	"github.com/bizcoach/assessment-server/internal/config"
	handler "github.com/bizcoach/assessment-server/internal/grpc"
	httpapi "github.com/bizcoach/assessment-server/internal/http"
	"github.com/bizcoach/assessment-server/internal/metrics"
	"github.com/bizcoach/assessment-server/internal/repository"
	"github.com/bizcoach/assessment-server/internal/service"
	"github.com/bizcoach/assessment-server/pkg/cache"
	dbbuilder "github.com/bizcoach/assessment-server/pkg/database"
	grpcsrv "github.com/bizcoach/assessment-server/pkg/grpc/server"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	grpcServer *grpcsrv.Server
	httpServer *nethttp.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("driver", cfg.DBDriver))

	dialect := repository.DialectForDriver(cfg.DBDriver)
	if cfg.DBMigrate {
		if err := repository.Migrate(ctx, dbPool, dialect, logger); err != nil {
			_ = dbPool.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		logger.Info("Database migrations applied", zap.String("dialect", string(dialect)))
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		_ = dbPool.Close()
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	assessmentRepo := repository.NewAssessmentRepository(dbPool, dialect)
	swotRepo := repository.NewSwotRepository(dbPool, dialect)

	assessmentService := service.NewAssessmentService(assessmentRepo, swotRepo, logger)

	grpcHandlers := handler.NewGRPCHandlers(assessmentService, cacheClient, logger, cfg.CacheTTL)
	assessmentService.OnSaved(grpcHandlers.InvalidateBusiness)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithMetrics(metrics.RPCDuration),
	)
	if err != nil {
		_ = cacheClient.Close()
		_ = dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.Register(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterAssessmentScoringServer(s, grpcHandlers)
	})

	router := httpapi.NewRouter(assessmentService, logger, httpapi.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Checks: map[string]httpapi.HealthCheck{
			"database": dbPool.PingContext,
			"cache":    cacheClient.Ping,
		},
	})

	httpServer := &nethttp.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.HTTPPort)),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	httpErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			httpErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case err := <-httpErr:
		a.logger.Error("HTTP server failed", zap.Error(err))
		runErr = err
	case err := <-a.grpcServer.Errors():
		runErr = fmt.Errorf("gRPC server failed: %w", err)
	}

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			a.logger.Warn("shutdown completed but deadline exceeded")
		}
	default:
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return runErr
}
