package config

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Server  ServerConfig  `json:"server,omitempty"  yaml:"server,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	History HistoryConfig `json:"history,omitempty" yaml:"history,omitempty"`
	Rewrite RewriteConfig `json:"rewrite"           yaml:"rewrite"`
	TTS     TTSConfig     `json:"tts"               yaml:"tts"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
}

// StorageConfig holds configuration for generated artifacts.
type StorageConfig struct {
	AudioDir string `json:"audio_dir,omitempty" yaml:"audio_dir,omitempty"`
}

// HistoryConfig holds configuration for the processing history store.
// History is always kept for the lifetime of the process; Enabled plus a
// Path makes it durable in SQLite.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"        yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// RewriteConfig holds configuration for the rewrite service.
type RewriteConfig struct {
	DefaultProvider string                           `json:"default_provider"          yaml:"default_provider"`
	DefaultTone     string                           `json:"default_tone,omitempty"    yaml:"default_tone,omitempty"`
	MaxChunkChars   int                              `json:"max_chunk_chars,omitempty" yaml:"max_chunk_chars,omitempty"`
	Providers       map[string]RewriteProviderConfig `json:"providers"                 yaml:"providers"`
}

// RewriteProviderConfig holds configuration for a single rewrite provider.
type RewriteProviderConfig struct {
	Model   string `json:"model"              yaml:"model"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// TTSConfig holds configuration for the speech service.
type TTSConfig struct {
	DefaultEngine  string                     `json:"default_engine"             yaml:"default_engine"`
	DefaultVoice   string                     `json:"default_voice,omitempty"    yaml:"default_voice,omitempty"`
	DefaultRateWPM int                        `json:"default_rate_wpm,omitempty" yaml:"default_rate_wpm,omitempty"`
	Engines        map[string]TTSEngineConfig `json:"engines"                    yaml:"engines"`
}

// TTSEngineConfig holds configuration for a single speech engine.
type TTSEngineConfig struct {
	BinPath   string `json:"bin_path,omitempty"   yaml:"bin_path,omitempty"`
	ModelPath string `json:"model_path,omitempty" yaml:"model_path,omitempty"`
}
