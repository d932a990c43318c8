package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/planventure/planventure-api/internal/config"
	"github.com/planventure/planventure-api/internal/db"
	"github.com/planventure/planventure-api/internal/es"
	"github.com/planventure/planventure-api/internal/httpserver"
	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/mail"
	logmw "github.com/planventure/planventure-api/internal/middleware/logging"
	"github.com/planventure/planventure-api/internal/mykafka"
	"github.com/planventure/planventure-api/internal/repo"
	"github.com/planventure/planventure-api/internal/service"
	"github.com/planventure/planventure-api/internal/tokens"
)

func main() {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, trip search disabled", "error", err)
		esClient = nil
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SESFromEmail != "" {
		sesMailer, err := mail.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
		if err != nil {
			logger.Warn("SES unavailable, password reset mail disabled", "error", err)
		} else {
			mailer = sesMailer
		}
	} else {
		logger.Warn("SES_FROM_EMAIL not set, password reset mail disabled")
	}

	issuer := &tokens.Issuer{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		Lifetimes: tokens.Lifetimes{
			Access:          cfg.AccessTokenTTL,
			AccessRemember:  cfg.AccessTokenTTLRemember,
			Refresh:         cfg.RefreshTokenTTL,
			RefreshRemember: cfg.RefreshTokenTTLRemember,
		},
	}

	store := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:        store,
		Issuer:      issuer,
		Reset:       &tokens.ResetCodec{},
		Mailer:      mailer,
		Producer:    producer,
		FrontendURL: cfg.FrontendURL,
	}
	tripSvc := &service.TripService{Repo: store, Producer: producer, ES: esClient}
	formSvc := &service.FormService{Repo: store, Producer: producer}

	var oauthHandler *httpserver.OAuthHandler
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthHandler = &httpserver.OAuthHandler{
			Svc: authSvc,
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleRedirectURL,
				Scopes:       []string{"openid", "email"},
				Endpoint:     google.Endpoint,
			},
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(logmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &httpserver.AuthHandler{Svc: authSvc},
		OAuthHandler: oauthHandler,
		TripHandler:  &httpserver.TripHandler{Svc: tripSvc},
		FormHandler:  &httpserver.FormHandler{Svc: formSvc},
		AccessSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
