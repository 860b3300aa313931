package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/readypath/readypath/internal/app"
	"github.com/readypath/readypath/internal/auth"
	"github.com/readypath/readypath/internal/observability"
	"github.com/readypath/readypath/internal/platform/cache"
	"github.com/readypath/readypath/internal/platform/db"
	"github.com/readypath/readypath/internal/rbac"
	"github.com/readypath/readypath/internal/resumes"
	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/scores"
	"github.com/readypath/readypath/internal/shared"
	"github.com/readypath/readypath/internal/users"
	"github.com/readypath/readypath/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "readypath_session", cfg.SessionTTL, cfg.IsProduction())

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)

	statsCache := cache.New(redisClient, cfg.StatsCacheTTL)
	roleRepo := roles.NewRepository(pool)
	roleService := roles.NewService(roleRepo, statsCache, logger)

	rbacRepo := rbac.NewRepository(pool)
	rbacService := rbac.NewService(rbacRepo, logger)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	resumeRepo := resumes.NewRepository(pool)
	resumeService := resumes.NewService(resumeRepo, jobClient, logger)

	scoreRepo := scores.NewRepository(pool)
	scoreService := scores.NewService(scoreRepo, logger)

	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, userService)
	usersHandler := users.NewHandler(logger, userService, rbacMiddleware)
	rolesHandler := roles.NewHandler(logger, roleService, rbacMiddleware)
	rbacHandler := rbac.NewHandler(logger, rbacService, rbacMiddleware)
	resumesHandler := resumes.NewHandler(logger, resumeService, rbacMiddleware)
	scoresHandler := scores.NewHandler(logger, scoreService, rbacMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		AuthHandler:    authHandler,
		UsersHandler:   usersHandler,
		RolesHandler:   rolesHandler,
		RBACHandler:    rbacHandler,
		ResumesHandler: resumesHandler,
		ScoresHandler:  scoresHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
