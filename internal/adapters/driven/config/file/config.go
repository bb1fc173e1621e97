// Package file loads application configuration from a TOML file with
// environment overrides.
//
// Precedence, lowest to highest: config file, .env file in the working
// directory, process environment. The environment names mirror the
// settings a deployment actually varies per machine: where the database
// lives and how to reach Ollama.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// Environment variable names recognised as overrides.
const (
	EnvDBPath      = "LOGSEQ_DB_PATH"
	EnvOllamaHost  = "OLLAMA_HOST"
	EnvOllamaModel = "OLLAMA_MODEL"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "nomic-embed-text"

// Config holds everything the application needs to run.
type Config struct {
	// Database is where the SQLite file lives.
	Database DatabaseConfig `toml:"database"`

	// Ollama configures the embedding backend.
	Ollama OllamaConfig `toml:"ollama"`

	// Search tunes hybrid ranking. Zero values fall back to the stock
	// defaults at load time.
	Search SearchConfig `toml:"search"`
}

// DatabaseConfig locates the document store.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// OllamaConfig locates the embedding backend.
type OllamaConfig struct {
	Host  string `toml:"host"`
	Model string `toml:"model"`
}

// SearchConfig tunes hybrid ranking.
type SearchConfig struct {
	FTSWeight       float64 `toml:"fts_weight"`
	SemanticWeight  float64 `toml:"semantic_weight"`
	SimilarityFloor float64 `toml:"similarity_floor"`
}

// DefaultPath returns the default config file location,
// ~/.logseq-searcher/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".logseq-searcher", "config.toml"), nil
}

// Load reads configuration from the given TOML file, then applies .env
// and environment overrides. An empty path means the default location;
// a missing file at the default location is not an error, but a missing
// file at an explicitly given path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; the environment can carry everything.
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// A .env in the working directory feeds the environment without
	// clobbering values the caller already exported.
	_ = godotenv.Load()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvOllamaHost); v != "" {
		cfg.Ollama.Host = v
	}
	if v := os.Getenv(EnvOllamaModel); v != "" {
		cfg.Ollama.Model = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Ollama.Model == "" {
		c.Ollama.Model = DefaultModel
	}
	if c.Search.FTSWeight == 0 && c.Search.SemanticWeight == 0 {
		c.Search.FTSWeight = domain.DefaultFTSWeight
		c.Search.SemanticWeight = domain.DefaultSemanticWeight
	}
	if c.Search.SimilarityFloor == 0 {
		c.Search.SimilarityFloor = domain.DefaultSimilarityFloor
	}
}

// Validate reports every missing mandatory setting in one error, so a
// user fixing their environment sees the whole list at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Path == "" {
		missing = append(missing, EnvDBPath)
	}
	if c.Ollama.Host == "" {
		missing = append(missing, EnvOllamaHost)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required configuration: %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}
