package main

import (
	"context"
	"log"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/assistant"
	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/backend/mock"
	"github.com/fastygo/frontend/backend/rest"
	"github.com/fastygo/frontend/internal/config"
	"github.com/fastygo/frontend/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/frontend/internal/infrastructure/redis"
	"github.com/fastygo/frontend/internal/middleware"
	"github.com/fastygo/frontend/internal/router"
	"github.com/fastygo/frontend/internal/services/lifecycle"
	"github.com/fastygo/frontend/internal/session"
	"github.com/fastygo/frontend/pkg/httpcontext"
	"github.com/fastygo/frontend/pkg/logger"
	assistantUC "github.com/fastygo/frontend/usecase/assistant"
	authUC "github.com/fastygo/frontend/usecase/auth"
	taskUC "github.com/fastygo/frontend/usecase/task"
	"github.com/fastygo/frontend/web/handler"
)

const monitorInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	var (
		store       session.Store
		redisClient *redislib.Client
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisClient, err = redisInfra.NewClient(cfg.Redis, logger.Component(zapLogger, "redis"))
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		store = session.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		store = memStore

		janitor := session.NewJanitor(memStore, cfg.Session.SweepInterval, logger.Component(zapLogger, "session"))
		janitor.Start()
		manager.Register("session_janitor", func(ctx context.Context) error {
			janitor.Stop(ctx)
			return nil
		})
	}

	var provider backend.Service
	if cfg.Mock.Enabled {
		provider = mock.New(cfg.Mock.JWTSecret)
		zapLogger.Info("mock mode enabled, serving canned backend data")
	} else {
		provider = rest.New(rest.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
		}, logger.Component(zapLogger, "backend"))
	}

	var (
		history          *assistant.HistoryStore
		assistantUseCase *assistantUC.UseCase
	)
	if cfg.Assistant.Enabled {
		history, err = assistant.OpenHistory(cfg.Assistant.HistoryPath)
		if err != nil {
			zapLogger.Fatal("failed to open assistant history", zap.Error(err))
		}
		manager.Register("assistant_history", func(ctx context.Context) error {
			return history.Close()
		})

		var openAI assistant.Responder
		if cfg.Assistant.OpenAIKey != "" {
			openAI = assistant.NewOpenAIResponder(cfg.Assistant.OpenAIKey, cfg.Assistant.OpenAIModel, logger.Component(zapLogger, "assistant"))
			zapLogger.Info("assistant can use OpenAI", zap.String("model", cfg.Assistant.OpenAIModel))
		}
		assistantUseCase = assistantUC.New(history, assistant.KeywordResponder{}, openAI, logger.Component(zapLogger, "assistant"))
	}

	mon := monitor.New(provider, redisClient, history, monitorInterval, logger.Component(zapLogger, "monitor"))
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	authUseCase := authUC.New(provider, store, cfg.Session.TTL, logger.Component(zapLogger, "auth"))
	taskUseCase := taskUC.New(provider, logger.Component(zapLogger, "tasks"))

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	hcfg := handler.Config{
		AppName:    cfg.AppName,
		CookieName: cfg.Session.CookieName,
		MockMode:   cfg.Mock.Enabled,
		DevTools:   cfg.Dev.Tools,
		Assistant:  cfg.Assistant.Enabled,
	}

	webLogger := logger.Component(zapLogger, "web")
	handlers := router.Handlers{
		Home:      handler.NewHomeHandler(hcfg, ctxAdapter, store, webLogger),
		Auth:      handler.NewAuthHandler(authUseCase, hcfg, ctxAdapter, store, webLogger),
		Dashboard: handler.NewDashboardHandler(taskUseCase, hcfg, ctxAdapter, store, webLogger),
		Task:      handler.NewTaskHandler(taskUseCase, hcfg, ctxAdapter, store, webLogger),
		Health:    handler.NewHealthHandler(mon, hcfg, ctxAdapter, store, webLogger),
		Error:     handler.NewErrorHandler(hcfg, ctxAdapter, store, webLogger),
	}
	if assistantUseCase != nil {
		handlers.Assistant = handler.NewAssistantHandler(assistantUseCase, hcfg, ctxAdapter, store, webLogger)
	}
	if cfg.Dev.Tools {
		handlers.Dev = handler.NewDevHandler(authUseCase, hcfg, ctxAdapter, store, webLogger)
	}

	mw := router.Middleware{
		Load: middleware.SessionLoad(store, cfg.Session.CookieName, webLogger),
		Auth: middleware.SessionAuth(store, cfg.Session.CookieName, cfg.Session.TTL, webLogger),
	}
	r := router.New(handlers, mw)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.Bool("mock_mode", cfg.Mock.Enabled))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
