// Package config resolves service credentials and endpoints once at
// startup. Credentials come from the environment; user preferences live in
// the viper-managed YAML file wired up in main.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the injected configuration record for the external services.
// Core packages receive the values they need; nothing queries the
// environment ad hoc.
type Config struct {
	// GenAPIKey authenticates script and metadata generation.
	GenAPIKey string `env:"PODSMITH_API_KEY"`
	// TTSAPIKey authenticates speech synthesis.
	TTSAPIKey string `env:"PODSMITH_TTS_API_KEY"`
	// FetchAPIKey authenticates the content-fetch service.
	FetchAPIKey string `env:"PODSMITH_FETCH_API_KEY"`

	GenEndpoint   string `env:"PODSMITH_GEN_ENDPOINT" envDefault:"https://api.podsmith.dev/v1/generate"`
	TTSEndpoint   string `env:"PODSMITH_TTS_ENDPOINT" envDefault:"https://api.podsmith.dev/v1/speech"`
	FetchEndpoint string `env:"PODSMITH_FETCH_ENDPOINT" envDefault:"https://api.firecrawl.dev/v1/scrape"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
