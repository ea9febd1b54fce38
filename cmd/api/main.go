package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "talent-search/docs" // Swagger docs
	"talent-search/internal/analytics"
	"talent-search/internal/api"
	"talent-search/internal/auth"
	"talent-search/internal/cache"
	"talent-search/internal/cache/redis"
	"talent-search/internal/config"
	"talent-search/internal/cv"
	"talent-search/internal/events"
	"talent-search/internal/llm"
	"talent-search/internal/logging"
	"talent-search/internal/search"
	"talent-search/internal/storage"
	"talent-search/internal/telemetry"
	httpclient "talent-search/pkg/http"
)

// @title Talent Search API
// @version 1.0
// @description Candidate profiles, natural-language candidate search, interest requests and analytics.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

func newDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*storage.DB, error) {
	db, err := storage.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := storage.NewMigrator(db, logger).Up(ctx)
			if err != nil {
				return err
			}
			logger.Info("Schema up to date", zap.Int("applied", n))
			return nil
		},
		OnStop: func(context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func newTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) error {
	if cfg.OTelCollectorURL == "" {
		logger.Info("Tracing disabled (OTEL_COLLECTOR_URL not set)")
		return nil
	}
	shutdown, err := telemetry.InitTracer(context.Background(), cfg.OTelCollectorURL)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

func newCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		logger.Info("Resume cache disabled (REDIS_ADDR not set)")
		return cache.Nop{}
	}
	c := redis.New(redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "talent-search:",
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				logger.Warn("Redis not reachable, resume parses will not be cached", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error { return c.Close() },
	})
	return c
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	p, err := events.NewPublisher(logger, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		p.Close()
		return nil
	}})
	return p, nil
}

func newTracker(lc fx.Lifecycle, cfg *config.Config, db *storage.DB, p events.Publisher, logger *zap.Logger) *analytics.Tracker {
	t := analytics.NewTracker(db, p, cfg.AnalyticsQueueSize, logger)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			t.Start()
			return nil
		},
		OnStop: t.Stop,
	})
	return t
}

func newAuth(cfg *config.Config, db *storage.DB, logger *zap.Logger) *auth.Service {
	keys := auth.NewCertSource(cfg.AuthCertsURL, httpclient.NewClient(10*time.Second))
	return auth.NewService(auth.NewVerifier(keys, cfg.AuthProjectID), db, logger)
}

func newImporter(cfg *config.Config, c cache.Cache, logger *zap.Logger) *cv.Importer {
	parser := llm.NewService(llm.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
	}, logger)
	if !parser.Enabled() {
		logger.Info("Resume parsing disabled (LLM_PROVIDER=none)")
	}
	return cv.NewImporter(parser, c, cfg.ResumeCacheTTL, cv.Defaults{
		BillRate:     cfg.DefaultBillRate,
		PayRate:      cfg.DefaultPayRate,
		Availability: cfg.DefaultAvailability,
	}, logger)
}

func newAPI(cfg *config.Config, db *storage.DB, tracker *analytics.Tracker, authSvc *auth.Service, importer *cv.Importer, logger *zap.Logger) *api.API {
	return api.NewAPI(api.Deps{
		Store:          db,
		Search:         search.NewInterpreter(db, logger),
		Tracker:        tracker,
		Documents:      cv.NewParser(cfg.MaxUploadBytes),
		Importer:       importer,
		Auth:           authSvc,
		RequireAdmin:   cfg.AuthRequireAdmin,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, logger)
}

func newServer(lc fx.Lifecycle, cfg *config.Config, a *api.API, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(a),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute, // resume parsing waits on the LLM
		IdleTimeout:  120 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("API server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logging.New,
			newDB,
			newCache,
			newPublisher,
			newTracker,
			newAuth,
			newImporter,
			newAPI,
			newServer,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Invoke(
			newTracing,
			func(cfg *config.Config, logger *zap.Logger) {
				if cfg.EnvFile == "" {
					logger.Warn(".env file not found, using environment variables")
				}
			},
			func(*http.Server) {},
		),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
