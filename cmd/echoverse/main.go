package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/echoverse-team/echoverse/internal/config"
	"github.com/echoverse-team/echoverse/internal/env"
	"github.com/echoverse-team/echoverse/internal/envvar"
	"github.com/echoverse-team/echoverse/internal/history"
	"github.com/echoverse-team/echoverse/internal/logger"
	"github.com/echoverse-team/echoverse/internal/rewrite"
	httpserver "github.com/echoverse-team/echoverse/internal/server/http"
	"github.com/echoverse-team/echoverse/internal/service"
	"github.com/echoverse-team/echoverse/internal/tts"
	"github.com/echoverse-team/echoverse/internal/tts/espeak"
	"github.com/echoverse-team/echoverse/internal/tts/piper"
	"github.com/echoverse-team/echoverse/internal/tts/say"
)

func main() {
	var (
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "echoverse.v1.schema.json"), "Path to schema file")
	)
	flag.Parse()

	_ = godotenv.Load()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile("logs/echoverse.log"),
		),
	)

	providers := rewrite.NewRegistry()
	engines := tts.NewRegistry()

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		registerProviders(providers, cfg)
		registerEngines(engines, cfg)
	})
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
		os.Exit(1)
	}

	cfg := watcher.Snapshot()
	registerProviders(providers, cfg)
	registerEngines(engines, cfg)

	slog.Info("Config loaded successfully",
		"config", *flagConfigPath,
		"schema", *flagSchemaPath,
		"providers", providers.List(),
		"engines", engines.List(),
	)

	store := newHistoryStore(cfg)
	defer store.Close()

	rewriteSvc := service.NewRewrite(providers, service.RewriteOptions{
		DefaultProvider: rewrite.Provider(cfg.Rewrite.DefaultProvider),
		DefaultTone:     cfg.Rewrite.DefaultTone,
		MaxChunkChars:   cfg.Rewrite.MaxChunkChars,
	})

	speechSvc := service.NewSpeech(engines, service.SpeechOptions{
		DefaultEngine: tts.EngineProvider(cfg.TTS.DefaultEngine),
		DefaultVoice:  cfg.TTS.DefaultVoice,
		DefaultRate:   cfg.TTS.DefaultRateWPM,
		AudioDir:      cfg.Storage.AudioDir,
	})

	server := httpserver.New(httpserver.Options{
		Port:     cfg.Server.HTTPPort,
		AudioDir: cfg.Storage.AudioDir,
	}, rewriteSvc, speechSvc, store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down cleanly", "error", err)
		}
	}

	if err := providers.Close(); err != nil {
		slog.Error("Failed to close rewrite providers", "error", err)
	}
	if err := engines.Close(); err != nil {
		slog.Error("Failed to close speech engines", "error", err)
	}
}

// registerProviders (re)registers rewrite providers from config. Providers
// without credentials are skipped with a warning so a partially configured
// install still serves what it can.
func registerProviders(reg *rewrite.Registry, cfg *config.Config) {
	for name, pc := range cfg.Rewrite.Providers {
		switch rewrite.Provider(name) {
		case rewrite.ProviderOpenAI:
			p, err := rewrite.NewOpenAI(rewrite.OpenAIConfig{
				APIKey:  os.Getenv(envvar.OpenAIAPIKey),
				Model:   pc.Model,
				BaseURL: pc.BaseURL,
			})
			if err != nil {
				slog.Warn("Skipping rewrite provider", "provider", name, "error", err)
				continue
			}
			reg.Register(p)

		case rewrite.ProviderHuggingFace:
			token := os.Getenv(envvar.HFToken)
			if token == "" {
				slog.Warn("Skipping rewrite provider", "provider", name, "error", "HF_TOKEN is not set")
				continue
			}
			reg.Register(rewrite.NewHuggingFace(rewrite.HuggingFaceConfig{
				Token:    token,
				Model:    pc.Model,
				Endpoint: pc.BaseURL,
			}))

		default:
			slog.Warn("Unknown rewrite provider in config", "provider", name)
		}
	}
}

// registerEngines (re)registers speech engines from config. A missing binary
// is a warning, not a crash; synthesis simply reports the engine as absent.
func registerEngines(reg *tts.Registry, cfg *config.Config) {
	for name, ec := range cfg.TTS.Engines {
		switch tts.EngineProvider(name) {
		case tts.EngineProviderESpeak:
			e, err := espeak.New(ec.BinPath)
			if err != nil {
				slog.Warn("Skipping speech engine", "engine", name, "error", err)
				continue
			}
			reg.Register(e)

		case tts.EngineProviderSay:
			if runtime.GOOS != "darwin" {
				slog.Warn("Skipping speech engine", "engine", name, "error", "say is only available on macOS")
				continue
			}
			e, err := say.New(ec.BinPath)
			if err != nil {
				slog.Warn("Skipping speech engine", "engine", name, "error", err)
				continue
			}
			reg.Register(e)

		case tts.EngineProviderPiper:
			e, err := piper.New(ec.BinPath, ec.ModelPath)
			if err != nil {
				slog.Warn("Skipping speech engine", "engine", name, "error", err)
				continue
			}
			reg.Register(e)

		default:
			slog.Warn("Unknown speech engine in config", "engine", name)
		}
	}
}

// newHistoryStore picks the store backing the /history endpoints. A path in
// config means durable SQLite; otherwise history lives in memory.
func newHistoryStore(cfg *config.Config) history.Store {
	if !cfg.History.Enabled {
		return history.NewMemoryStore()
	}

	if cfg.History.Path == "" {
		return history.NewMemoryStore()
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		slog.Warn("Falling back to in-memory history", "path", cfg.History.Path, "error", err)
		return history.NewMemoryStore()
	}

	return store
}
