package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatkiosk/internal/ai"
	"chatkiosk/internal/chat"
	"chatkiosk/internal/config"
	"chatkiosk/internal/db"
	"chatkiosk/internal/httpapi"
	"chatkiosk/internal/httpapi/handlers"
	"chatkiosk/internal/speech"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("configuration loaded",
		"db_driver", cfg.DBDriver,
		"chat_model", cfg.DefaultChatModel,
		"reason_model", cfg.DefaultReasonModel,
		"cli_only", cfg.CLIOnly,
	)

	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate db: %v", err)
	}

	repo := chat.NewRepo(gdb)

	// Preference order: local CLI, local daemon, remote HTTP. Strict
	// mode pins everything to the first entry.
	var backends []ai.Backend
	if cfg.UseOllamaCLI || cfg.CLIOnly {
		backends = append(backends, ai.NewCLIBackend(cfg.OllamaBin))
	}
	backends = append(backends, ai.NewDaemonBackend(cfg.DaemonBaseURL))
	if cfg.RemoteBaseURL != "" {
		backends = append(backends, ai.NewRemoteBackend(cfg.RemoteBaseURL, cfg.RemoteAPIKey, cfg.RemoteSiteURL, cfg.RemoteAppName))
	}
	selector := ai.NewSelector(cfg.CLIOnly, backends...)

	svc := chat.NewService(repo, selector, cfg.ContextWindow, cfg.DefaultChatModel, cfg.DefaultReasonModel)

	transcriber := speech.NewTranscriber(cfg.WhisperURL)
	captioner := speech.NewCaptioner(cfg.DaemonBaseURL, cfg.CaptionModel)
	synth := speech.NewSynthesizer(cfg.PiperBin, cfg.PiperVoice)

	h := handlers.New(cfg, repo, svc, selector, transcriber, captioner, synth)
	router := httpapi.NewRouter(cfg, h)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}
