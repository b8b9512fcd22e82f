package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ceidigital/backoffice/internal/application/notification"
	"github.com/ceidigital/backoffice/internal/application/seed"
	"github.com/ceidigital/backoffice/internal/config"
	jwtinfra "github.com/ceidigital/backoffice/internal/infrastructure/jwt"
	"github.com/ceidigital/backoffice/internal/infrastructure/postgres"
	s3infra "github.com/ceidigital/backoffice/internal/infrastructure/s3"
	"github.com/ceidigital/backoffice/internal/infrastructure/smtp"
	"github.com/ceidigital/backoffice/internal/infrastructure/twilio"
	transporthttp "github.com/ceidigital/backoffice/internal/transport/http"
	"github.com/ceidigital/backoffice/internal/verification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	userRepo := postgres.NewUserRepo(pool)
	roleRepo := postgres.NewRoleRepo(pool)
	companyRepo := postgres.NewCompanyRepo(pool)
	productRepo := postgres.NewProductRepo(pool)

	if err := seed.Run(ctx, cfg, userRepo, roleRepo, companyRepo); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	signer := jwtinfra.NewSigner(cfg.JWTSecret, time.Duration(cfg.JWTExpirySeconds)*time.Second)

	// S3 image store.
	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatalf("s3 client failed: %v", err)
	}
	imageStore := s3infra.NewImageStore(s3Client, cfg.S3BucketName)

	// SMTP mailer (nil when unconfigured; sends degrade to log output).
	mailer := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)

	sender := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	notifier := notification.NewService(
		mailer,
		sender,
		notification.NewAuditLog(notification.DefaultAuditCapacity),
		notification.NewAuditLog(notification.DefaultAuditCapacity),
		notification.Settings{
			AccountSID:      cfg.TwilioAccountSID,
			AuthToken:       cfg.TwilioAuthToken,
			SMSFrom:         cfg.TwilioSMSFrom,
			WhatsappFrom:    cfg.TwilioWhatsappFrom,
			WhatsappEnabled: cfg.WhatsappEnabled,
			CountryCode:     cfg.DefaultCountryCode,
		},
	)

	deps := &transporthttp.Deps{
		Pool:      pool,
		Users:     userRepo,
		Roles:     roleRepo,
		Companies: companyRepo,
		Products:  productRepo,
		Images:    imageStore,
		Codes:     verification.NewStore(),
		Signer:    signer,
		Notifier:  notifier,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	slog.Info("server stopped")
}
