package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/resume-builder-be/internal/api"
	"github.com/isdelr/resume-builder-be/internal/archive"
	"github.com/isdelr/resume-builder-be/internal/auth"
	"github.com/isdelr/resume-builder-be/internal/config"
	"github.com/isdelr/resume-builder-be/internal/database"
	"github.com/isdelr/resume-builder-be/internal/logger"
	"github.com/isdelr/resume-builder-be/internal/mailer"
	"github.com/isdelr/resume-builder-be/internal/metrics"
	"github.com/isdelr/resume-builder-be/internal/pdf"
	"github.com/isdelr/resume-builder-be/internal/services"
	"github.com/isdelr/resume-builder-be/internal/session"
	"github.com/isdelr/resume-builder-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	// Set up database
	dialect := database.Dialect(cfg.DatabaseDriver)
	db, err := database.New(dialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db, dialect); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Draft sessions live in Redis when configured, otherwise in process memory.
	var drafts session.Store
	var sweeper *session.Sweeper
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		drafts = session.NewRedisStore(rdb, cfg.DraftTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis draft store")
	} else {
		mem := session.NewMemoryStore(cfg.DraftTTL)
		sweeper, err = session.NewSweeper(mem, "@every 1m")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule draft sweeper")
		}
		sweeper.Run()
		drafts = mem
		log.Info().Msg("Using in-memory draft store")
	}

	var archiver archive.Archiver
	if cfg.S3.Bucket != "" {
		s3Archive, err := archive.NewS3(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 archive")
		}
		archiver = s3Archive
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Archiving generated resumes to S3")
	}

	// Set up services
	m := metrics.New()
	eventService := services.NewEventService(db, dialect)
	accountService := services.NewAccountService(
		store.NewAccounts(db, dialect),
		mailer.New(cfg.SMTP),
		auth.NewBcrypt(),
		eventService,
		m,
		services.AccountOptions{
			CodeTTL:        cfg.CodeTTL,
			CodeLength:     cfg.CodeLength,
			StrictDelivery: cfg.StrictDelivery,
		},
	)
	resumeService := services.NewResumeService(drafts, store.NewResumes(db, dialect), pdf.NewFPDF(), archiver, eventService, m)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Set up router
	router := api.NewRouter(accountService, resumeService, eventService, tokens, m, api.Options{
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.IsProduction(),
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if sweeper != nil {
		sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
