package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/echoverse-team/echoverse/internal/xfs"
)

// Overrides are environment variable overrides applied on top of the file.
type Overrides struct {
	HTTPPort int    `env:"ECHOVERSE_SERVER_HTTP_PORT"`
	AudioDir string `env:"ECHOVERSE_AUDIO_DIR"`
}

// LoadAndValidate loads and validates the configuration.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into Config struct: %w", err)
	}

	applyDefaults(&config)

	if err := applyOverrides(&config); err != nil {
		return nil, err
	}

	config.Storage.AudioDir = xfs.ExpandTilde(config.Storage.AudioDir)
	if config.History.Path != "" {
		config.History.Path = xfs.ExpandTilde(config.History.Path)
	}
	for name, ec := range config.TTS.Engines {
		ec.BinPath = xfs.ExpandTilde(ec.BinPath)
		ec.ModelPath = xfs.ExpandTilde(ec.ModelPath)
		config.TTS.Engines[name] = ec
	}

	return &config, nil
}

// applyOverrides layers environment variable overrides on top of the config.
func applyOverrides(cfg *Config) error {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse env overrides: %w", err)
	}

	if o.HTTPPort != 0 {
		cfg.Server.HTTPPort = o.HTTPPort
	}
	if o.AudioDir != "" {
		cfg.Storage.AudioDir = o.AudioDir
	}

	return nil
}
