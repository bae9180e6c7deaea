// Package bootstrap wires configuration, storage, domain services and the
// HTTP transport into a running process.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	domainauth "brandkit-server-go/internal/domain/auth"
	authstore "brandkit-server-go/internal/domain/auth/store"
	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/export"
	"brandkit-server-go/internal/domain/generation"
	"brandkit-server-go/internal/domain/imageresolver"
	platformconfig "brandkit-server-go/internal/platform/config"
	platformerrors "brandkit-server-go/internal/platform/errors"
	platformlogging "brandkit-server-go/internal/platform/logging"
	platformobservability "brandkit-server-go/internal/platform/observability"
	"brandkit-server-go/internal/platform/objectstore"
	platformstorage "brandkit-server-go/internal/platform/storage"
	httptransport "brandkit-server-go/internal/transport/http"
	httpwebapi "brandkit-server-go/internal/transport/http/webapi"

	"gorm.io/gorm"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config                *platformconfig.Config
	configPath            string
	logger                *platformlogging.Logger
	observabilityShutdown platformobservability.ShutdownFunc
	db                    *gorm.DB
	store                 *objectstore.Store
	authManager           *domainauth.Manager
	kitService            *brandkit.Service
	generator             *generation.Service
	assembler             *export.Assembler
	resolver              *imageresolver.Resolver
	webapiService         *httpwebapi.Service
}

// Run starts the whole service lifecycle: configuration, dependencies, the
// HTTP server, and graceful shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "bootstrap.validate", "config/logger not initialised")
	}
	defer logger.Close()

	if shutdown := state.observabilityShutdown; shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.WarnTag("BOOT", "observability shutdown failed: %v", err)
			}
		}()
	}
	defer func() {
		if err := state.authManager.Close(context.Background()); err != nil {
			logger.WarnTag("BOOT", "auth manager shutdown failed: %v", err)
		}
	}()

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(runCtx)

	if err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	return waitForShutdown(signalCtx, cancel, logger, group)
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(platformerrors.KindBootstrap, step.ID, "missing execute function")
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}
			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

// InitGraph lists the initialisation steps in dependency order.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "observability:setup-hooks",
			Title:     "Setup observability hooks",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   setupObservabilityStep,
		},
		{
			ID:        "storage:open-database",
			Title:     "Open database",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   openDatabaseStep,
		},
		{
			ID:        "objectstore:init",
			Title:     "Initialise object store",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initObjectStoreStep,
		},
		{
			ID:        "auth:init-manager",
			Title:     "Initialise auth manager",
			DependsOn: []string{"storage:open-database"},
			Kind:      platformerrors.KindAuth,
			Execute:   initAuthStep,
		},
		{
			ID:        "services:init",
			Title:     "Initialise domain services",
			DependsOn: []string{"storage:open-database", "objectstore:init", "auth:init-manager"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initServicesStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().WithDotEnv(true).Load()
	if err != nil {
		return err
	}
	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to create logger", err)
	}
	state.logger = logger
	platformlogging.DefaultLogger = logger

	if state.configPath != "" {
		logger.InfoTag("BOOT", "configuration loaded from %s", state.configPath)
	} else {
		logger.InfoTag("BOOT", "configuration loaded from defaults and environment")
	}
	return nil
}

func setupObservabilityStep(ctx context.Context, state *appState) error {
	cfg := platformobservability.Config{
		Enabled: strings.EqualFold(state.config.Log.Level, "debug"),
	}
	shutdown, err := platformobservability.Setup(ctx, cfg, state.logger.Slog())
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "observability:setup-hooks", "failed to setup observability hooks", err)
	}
	state.observabilityShutdown = shutdown
	return nil
}

func openDatabaseStep(_ context.Context, state *appState) error {
	db, err := platformstorage.Open(state.config.Database)
	if err != nil {
		return err
	}
	state.db = db
	state.logger.InfoTag("BOOT", "database ready at %s", state.config.Database.Path)
	return nil
}

func initObjectStoreStep(_ context.Context, state *appState) error {
	if state.config.ObjectStore.Endpoint == "" {
		state.logger.WarnTag("BOOT", "object store endpoint not configured, uploads disabled")
		return nil
	}
	store, err := objectstore.New(state.config.ObjectStore, state.logger)
	if err != nil {
		return err
	}
	state.store = store
	return nil
}

func initAuthStep(_ context.Context, state *appState) error {
	storeCfg := authstore.Config{
		Driver: state.config.Auth.Store.Type,
		TTL:    state.config.Auth.Expiry,
	}
	if state.config.Auth.Store.Type == authstore.DriverRedis {
		storeCfg.Redis = &authstore.RedisConfig{
			Addr:     state.config.Auth.Store.Redis.Addr,
			Password: state.config.Auth.Store.Redis.Password,
			DB:       state.config.Auth.Store.Redis.DB,
			Prefix:   state.config.Auth.Store.Redis.Prefix,
		}
	}

	sessionStore, err := authstore.New(storeCfg)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindAuth, "auth:init-manager", "failed to create session store", err)
	}

	manager, err := domainauth.NewManager(domainauth.Options{
		Store:      sessionStore,
		Logger:     state.logger,
		Secret:     state.config.Auth.JWTSecret,
		SessionTTL: state.config.Auth.Expiry,
	})
	if err != nil {
		return err
	}
	state.authManager = manager
	return nil
}

func initServicesStep(_ context.Context, state *appState) error {
	cfg := state.config
	logger := state.logger

	state.kitService = brandkit.NewService(platformstorage.NewBrandKitRepository(state.db), logger)

	if cfg.Generation.APIKey != "" {
		provider, err := generation.NewOpenAIProvider(cfg.Generation)
		if err != nil {
			return err
		}
		state.generator = generation.NewService(provider, logger, cfg.Generation.MaxConcurrent)
	} else {
		logger.WarnTag("BOOT", "generation API key not configured, generation disabled")
	}

	state.assembler = export.NewAssembler(export.AssemblerOptions{
		Logger:       logger,
		FetchTimeout: cfg.Export.FetchTimeout,
	})

	resolverOpts := imageresolver.Options{
		Cache:       imageresolver.NewLRUCache(cfg.Resolver.CacheSize),
		Logger:      logger,
		LoadTimeout: cfg.Resolver.LoadTimeout,
		MaxAttempts: cfg.Resolver.MaxAttempts,
		RetryStep:   cfg.Resolver.RetryStep,
	}
	if state.store != nil {
		resolverOpts.Lookup = state.store
	}
	state.resolver = imageresolver.New(resolverOpts)

	service, err := httpwebapi.NewService(httpwebapi.Options{
		Config:    cfg,
		Logger:    logger,
		Auth:      state.authManager,
		Users:     platformstorage.NewUserRepository(state.db),
		Kits:      state.kitService,
		Generator: state.generator,
		Assembler: state.assembler,
		Resolver:  state.resolver,
		Store:     state.store,
	})
	if err != nil {
		return err
	}
	state.webapiService = service
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) error {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config:         config,
		Logger:         logger,
		AuthMiddleware: domainauth.Middleware(state.authManager),
		StaticRoot:     config.Web.StaticDir,
	})
	if err != nil {
		return err
	}
	router := httpRouter.Engine

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, httptransport.APIResponse{
				Success: false,
				Data:    gin.H{},
				Message: "api not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		// SPA fallback
		c.File(config.Web.StaticDir + "/index.html")
	})

	if err := state.webapiService.Register(groupCtx, httpRouter.API, httpRouter.Secured); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    config.Server.IP + ":" + strconv.Itoa(config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://%s", httpServer.Addr)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down cleanly")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})
	return nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("BOOT", "shutdown signal received, cleaning up")

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("BOOT", "shutdown timed out")
		return errors.New("shutdown timed out")
	}
	return nil
}
