package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/avvvet/fabbrica-intent/internal/config"
	"github.com/avvvet/fabbrica-intent/internal/dispatch"
	"github.com/avvvet/fabbrica-intent/internal/domain"
	"github.com/avvvet/fabbrica-intent/internal/llm"
	"github.com/avvvet/fabbrica-intent/internal/memory"
	"github.com/avvvet/fabbrica-intent/internal/store"
	"github.com/avvvet/fabbrica-intent/internal/transport"
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg.AppEnv)

	logger.Info().
		Str("service", cfg.ServiceName).
		Str("nats_url", cfg.NatsURL).
		Str("model", cfg.GeminiModel).
		Msg("starting fabbrica intent service")

	if cfg.GeminiAPIKey == "" {
		logger.Fatal().Msg("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	// Record store: PostgreSQL when configured, in-memory otherwise
	var machines domain.MachineRepository
	var jobs domain.JobRepository
	if cfg.DatabaseURL != "" {
		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		if err := store.InitSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize schema")
		}
		machines = store.NewMachineRepo(pool)
		jobs = store.NewJobRepo(pool)
		logger.Info().Msg("record store: postgresql")
	} else {
		mem := store.NewMemSeeded()
		machines = mem.Machines()
		jobs = mem.Jobs()
		logger.Warn().Msg("DATABASE_URL not set, record store: in-memory (data is lost on restart)")
	}

	// Transcript store
	redisStore, err := memory.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	sessions := memory.NewManager(redisStore, logger)
	defer sessions.Close()
	logger.Info().Str("url", cfg.RedisURL).Dur("ttl", cfg.SessionTTL).Msg("transcript store: redis")

	// Oracle
	oracle, err := llm.NewGoogleAIProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini provider")
	}

	dispatcher := dispatch.NewDispatcher(machines, jobs, oracle, sessions, logger)

	natsTransport, err := transport.NewNATSTransport(cfg, dispatcher, machines, sessions, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize NATS transport")
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start NATS transport")
	}

	logger.Info().Str("subject", cfg.NatsChatSubject).Msg("fabbrica intent service is running")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info().Str("signal", sig.String()).Int("active_sessions", sessions.ActiveSessions()).Msg("shutting down")

	if err := natsTransport.Close(); err != nil {
		logger.Warn().Err(err).Msg("error closing NATS transport")
	}
	if err := sessions.Close(); err != nil {
		logger.Warn().Err(err).Msg("error closing transcript store")
	}

	logger.Info().Msg("fabbrica intent service stopped")
}

func newLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger
}
