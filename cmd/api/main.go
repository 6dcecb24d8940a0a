package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"hoteldash/internal/config"
	"hoteldash/internal/database"
	"hoteldash/internal/domain"
	"hoteldash/internal/middleware"
	"hoteldash/internal/modules/auth"
	"hoteldash/internal/modules/notification"
	"hoteldash/internal/modules/report"
	jwtsvc "hoteldash/internal/pkg/jwt"
	"hoteldash/internal/pkg/logger"
	"hoteldash/internal/repository"
	"hoteldash/internal/session"
	"hoteldash/internal/source"
	"hoteldash/internal/source/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		defer rdb.Close()
	}

	var (
		src           source.Source
		authenticator auth.Authenticator
		serviceSess   *session.Session
	)
	switch cfg.SourceMode {
	case config.SourceDB:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connect failed")
		}
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
		src = repository.NewSource(db, cfg.HotelLocation)
		authenticator = auth.NewLocalAuthenticator(repository.NewStaffRepository(db))
		serviceSess = session.Service("")
	default:
		client := rest.New(rest.Options{
			BaseURL:  cfg.BackendBaseURL,
			Timeout:  cfg.BackendTimeout,
			RPS:      cfg.BackendRPS,
			Location: cfg.HotelLocation,
		})
		src = client
		authenticator = auth.NewUpstreamAuthenticator(client)
		if cfg.BackendServiceToken != "" {
			serviceSess = session.Service(cfg.BackendServiceToken)
		}
	}
	log.Info().Str("source", cfg.SourceMode).Str("timezone", cfg.HotelLocation.String()).Msg("entity source ready")

	var (
		sessions session.Store
		cache    notification.SummaryCache
	)
	housekeeping := cron.New()
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
		cache = notification.NewRedisCache(rdb, 2*cfg.Notify.PollInterval)
	} else {
		mem := session.NewMemoryStore()
		sessions = mem
		cache = notification.NewMemoryCache(cfg.Notify.PollInterval)
		if _, err := housekeeping.AddFunc("@every 10m", func() {
			if n := mem.Sweep(); n > 0 {
				log.Debug().Int("sessions", n).Msg("expired sessions swept")
			}
		}); err != nil {
			log.Fatal().Err(err).Msg("schedule session sweep")
		}
	}
	housekeeping.Start()

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	loader := source.NewLoader(src)

	policy := notification.Policy{
		OverdueHighDays:       cfg.Notify.OverdueHighDays,
		OverdueUrgentDays:     cfg.Notify.OverdueUrgentDays,
		StaleHighHours:        cfg.Notify.StaleHighHours,
		StaleUrgentHours:      cfg.Notify.StaleUrgentHours,
		FailedPaymentLookback: cfg.Notify.FailedPaymentLookback,
		CurrencyDecimals:      cfg.CurrencyDecimals,
	}
	notificationService := notification.NewService(loader, policy, cfg.HotelLocation)
	hub := notification.NewHub()
	notificationHandler := notification.NewHandler(notificationService, cache, hub)

	var poller *notification.Poller
	if serviceSess != nil {
		poller = notification.NewPoller(notificationService, cache, hub, serviceSess, cfg.Notify.PollInterval)
		if err := poller.Start(); err != nil {
			log.Fatal().Err(err).Msg("start notification poller")
		}
	} else {
		log.Warn().Msg("BACKEND_SERVICE_TOKEN not set, notification badge is computed on demand")
	}

	reportHandler := report.NewHandler(report.NewService(loader, cfg.HotelLocation, cfg.CurrencyDecimals))
	authHandler := auth.NewHandler(auth.NewService(authenticator, sessions, jwtService))

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"source":      cfg.SourceMode,
			"subscribers": hub.Count(),
		})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService, sessions), middleware.DropRejectedSession(sessions))
	{
		authHandler.RegisterProtectedRoutes(protected)
		notificationHandler.RegisterRoutes(protected)
		reportHandler.RegisterRoutes(protected,
			string(domain.RoleAdmin), string(domain.RoleManager))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	if poller != nil {
		<-poller.Stop().Done()
	}
	<-housekeeping.Stop().Done()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
