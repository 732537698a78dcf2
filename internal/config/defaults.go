package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultHTTPPort returns the default HTTP port.
func DefaultHTTPPort() int {
	return 8080
}

// DefaultConfigPath returns the default path for the EchoVerse config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "echoverse", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "echoverse")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "echoverse")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "echoverse")
		}
		return filepath.Join(home, ".config", "echoverse")
	}
}

// DefaultAudioPath returns the default path for generated audio files.
func DefaultAudioPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "echoverse", "audio")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "echoverse", "audio")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "echoverse", "audio")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "echoverse", "audio")
		}
		return filepath.Join(home, ".cache", "echoverse", "audio")
	}
}

// applyDefaults fills zero values with sane defaults after load.
func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = DefaultHTTPPort()
	}
	if cfg.Storage.AudioDir == "" {
		cfg.Storage.AudioDir = DefaultAudioPath()
	}
	if cfg.Rewrite.DefaultTone == "" {
		cfg.Rewrite.DefaultTone = "Neutral"
	}
	if cfg.Rewrite.MaxChunkChars == 0 {
		cfg.Rewrite.MaxChunkChars = 500
	}
	if cfg.TTS.DefaultRateWPM == 0 {
		cfg.TTS.DefaultRateWPM = 180
	}
}
