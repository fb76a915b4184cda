package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventrsvp/config"
	authadapter "eventrsvp/internal/adapters/auth"
	emailadapter "eventrsvp/internal/adapters/email"
	httpdelivery "eventrsvp/internal/delivery/http"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/repository/postgres"
	"eventrsvp/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Event RSVP API
// @version 1.0
// @description Event management with email invitations and per-event RSVP capability tokens.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	invitationRepo := postgres.NewEventInvitationRepository(db)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := authadapter.NewJWTService(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
		ResendAPIKey: cfg.Email.ResendAPIKey,
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, rsvpRepo, userRepo, invitationRepo, emailService, cfg.RequestTimeout)
	rsvpService := services.NewRSVPService(eventRepo, rsvpRepo, userRepo, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(
		logger,
		tokens,
		cfg.AllowedOrigins,
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService),
		controllers.NewRSVPController(logger, rsvpService),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
}
