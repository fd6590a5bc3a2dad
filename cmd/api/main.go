package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coderun/account-service/internal/api"
	"github.com/coderun/account-service/internal/infrastructure/config"
	"github.com/coderun/account-service/internal/infrastructure/db/postgres"
	"github.com/coderun/account-service/internal/infrastructure/mail"
	"github.com/coderun/account-service/internal/infrastructure/queue"
	"github.com/coderun/account-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// The SMTP app password arrives JWT-wrapped in the environment.
	appPassword, err := mail.UnwrapAppPassword(cfg.Mail.AppPassword, cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("mail credential unwrap failed")
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Sender:   cfg.Mail.Sender,
		Password: appPassword,
	})

	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, log)
	dispatcher.Start(ctx)

	notifier := mail.NewNotifier(dispatcher, cfg.PublicBaseURL)

	e, err := api.NewRouter(db, notifier, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Msg("account service listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
