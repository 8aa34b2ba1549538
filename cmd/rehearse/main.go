package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rehearse-ai/rehearse/internal/api"
	"github.com/rehearse-ai/rehearse/internal/archive"
	"github.com/rehearse-ai/rehearse/internal/config"
	"github.com/rehearse-ai/rehearse/internal/events"
	"github.com/rehearse-ai/rehearse/internal/interview"
	"github.com/rehearse-ai/rehearse/internal/llmjson"
	"github.com/rehearse-ai/rehearse/internal/openrouter"
	"github.com/rehearse-ai/rehearse/internal/report"
	"github.com/rehearse-ai/rehearse/internal/session"
	"github.com/rehearse-ai/rehearse/internal/tts"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("rehearse starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Completion-backed components. Endpoints that need them fail fast with
	// a config error when the key is missing.
	var engine api.InterviewEngine
	var reports api.ReportSynthesizer
	if cfg.OpenRouterAPIKey != "" {
		llm := llmjson.New(openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterURL), slog.Default())
		engine = interview.NewEngine(llm, cfg.ModelFast, cfg.ModelReport, slog.Default())
		reports = report.NewSynthesizer(llm, cfg.ModelReport, slog.Default())
		slog.Info("completion client ready", "fast_model", cfg.ModelFast, "report_model", cfg.ModelReport)
	} else {
		slog.Warn("OPENROUTER_API_KEY not set — interview endpoints will fail")
	}

	var speech api.SpeechSynthesizer
	if cfg.ElevenLabsAPIKey != "" {
		speech = tts.NewClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
		slog.Info("tts client ready", "voice", cfg.ElevenLabsVoiceID)
	} else {
		slog.Warn("ELEVENLABS_API_KEY not set — /tts will fail")
	}

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes)*time.Minute, cfg.SessionLimit)

	// Event publisher (optional — interviews work without it, just no
	// lifecycle events for downstream consumers).
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without lifecycle events")
	}

	// Report archive (optional).
	var reportArchive *archive.Archive
	if cfg.DatabaseURL != "" {
		var err error
		reportArchive, err = archive.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer reportArchive.Close()
		slog.Info("report archive connected")
	} else {
		slog.Warn("DATABASE_URL not configured — reports will not be archived")
	}

	srv := api.NewServer(api.Options{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		Engine:         engine,
		Reports:        reports,
		Speech:         speech,
		Sessions:       sessions,
		Events:         publisher,
		Archive:        reportArchive,
		Logger:         slog.Default(),
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("rehearse ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("rehearse stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
