package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadbox/leadbox/internal/httpx"
	"github.com/leadbox/leadbox/internal/submission"
	"github.com/leadbox/leadbox/pkg/config"
	"github.com/leadbox/leadbox/pkg/httpserver"
	"github.com/leadbox/leadbox/pkg/logger"
	"github.com/leadbox/leadbox/pkg/mailer"
	"github.com/leadbox/leadbox/pkg/mongo"
	"github.com/leadbox/leadbox/pkg/ratelimit"
	"github.com/leadbox/leadbox/pkg/redis"
	"github.com/leadbox/leadbox/pkg/requestid"
)

type appConfig struct {
	Environment     string        `env:"APP_ENV" envDefault:"development"`
	RateLimit       int           `env:"SUBMIT_RATE_LIMIT" envDefault:"5"`
	RateLimitWindow time.Duration `env:"SUBMIT_RATE_WINDOW" envDefault:"1m"`
}

func main() {
	var (
		appCfg    appConfig
		httpCfg   httpserver.Config
		mongoCfg  mongo.Config
		redisCfg  redis.Config
		mailerCfg mailer.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&mailerCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, "leadbox"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		log.Error("failed to connect to mongodb", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from mongodb", logger.Error(err))
		}
	}()

	healthChecks := []func(context.Context) error{mongo.Healthcheck(db.Client())}

	// Redis is optional: without it the rate limiter falls back to an
	// in-process store, which is only accurate for a single instance.
	var limiterStore ratelimit.Store
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Error("failed to connect to redis", logger.Error(err))
			os.Exit(1)
		}
		defer rdb.Close()

		limiterStore = ratelimit.NewRedisStore(rdb)
		healthChecks = append(healthChecks, redis.Healthcheck(rdb))
	} else {
		store := ratelimit.NewMemoryStore()
		defer store.Close()
		limiterStore = store
		log.Warn("redis not configured, using in-memory rate limit store")
	}

	limiter, err := ratelimit.NewFixedWindow(limiterStore, appCfg.RateLimit, appCfg.RateLimitWindow)
	if err != nil {
		log.Error("failed to create rate limiter", logger.Error(err))
		os.Exit(1)
	}

	svcOpts := []submission.Option{}
	if mailerCfg.Enabled() {
		sender, err := mailer.NewPostmarkClient(mailerCfg)
		if err != nil {
			log.Error("failed to create postmark client", logger.Error(err))
			os.Exit(1)
		}
		svcOpts = append(svcOpts, submission.WithNotification(sender, mailerCfg.NotifyEmail))
	} else if mailerCfg.NotifyEmail != "" {
		svcOpts = append(svcOpts, submission.WithNotification(mailer.NewLogSender(log), mailerCfg.NotifyEmail))
	}

	repo := submission.NewRepository(db)
	svc := submission.NewService(repo, log, svcOpts...)
	h := submission.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(httpx.RequestLogger(log))
	r.Use(httpx.Recoverer(log))

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, healthChecks...))
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/submissions", h.Routes(
			ratelimit.Middleware(limiter, ratelimit.Composite(ratelimit.ByClientIP, ratelimit.ByEndpoint)),
		))
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped", slog.String("env", appCfg.Environment))
}
