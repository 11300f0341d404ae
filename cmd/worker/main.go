package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"recus/internal/adapter/repo"
	"recus/internal/infra"
	"recus/internal/infra/credentials"
	"recus/internal/mail"
)

// mailWorker drains the outbox: it claims pending entries one at a time,
// hands them to the provider and records the outcome.
type mailWorker struct {
	ctx          context.Context
	logger       infra.Logger
	outbox       *repo.OutboxRepositoryPG
	sender       *mail.ResendClient
	pollInterval time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	apiKey := strings.TrimSpace(cfg.ResendAPIKey)
	if apiKey == "" {
		keyFromStore, err := credentials.NewStore(runner).ResendAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("worker: failed to load resend api key from store")
		} else {
			apiKey = keyFromStore
		}
	}
	if apiKey == "" {
		logger.Warn().Msg("worker: resend api key missing, queued mail will be marked as errors")
	}

	worker := &mailWorker{
		ctx:          ctx,
		logger:       logger,
		outbox:       repo.NewOutboxRepository(runner),
		sender:       mail.NewResendClient(apiKey, cfg.ResendBaseURL),
		pollInterval: cfg.WorkerPollInterval,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *mailWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		msg, err := w.outbox.ClaimPending(w.ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("worker: failed to claim outbox entry")
			w.sleep()
			continue
		}
		if msg == nil {
			w.sleep()
			continue
		}

		w.deliver(msg)
	}
}

func (w *mailWorker) deliver(msg *mail.Message) {
	w.logger.Info().Str("mail_id", msg.ID).Str("subject", msg.Subject).Msg("worker: delivering mail")

	status := mail.StatusSent
	lastError := ""
	if err := w.sender.Send(w.ctx, *msg); err != nil {
		status = mail.StatusError
		lastError = err.Error()
		w.logger.Error().Err(err).Str("mail_id", msg.ID).Msg("worker: delivery failed")
	}

	if err := w.outbox.MarkStatus(w.ctx, msg.ID, status, lastError); err != nil {
		w.logger.Error().Err(err).Str("mail_id", msg.ID).Msg("worker: mark status failed")
	}
}

func (w *mailWorker) sleep() {
	select {
	case <-w.ctx.Done():
	case <-time.After(w.pollInterval):
	}
}
