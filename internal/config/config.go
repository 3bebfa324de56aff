package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given.
const DefaultPath = "horizons.yaml"

// Config holds the application configuration.
type Config struct {
	BrainURL     string        `yaml:"brain_url"`
	APIURL       string        `yaml:"api_url"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`

	UserID  string `yaml:"user_id"`
	SaveDir string `yaml:"save_dir"`
	LogFile string `yaml:"log_file"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures `horizons serve`.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BrainURL:    "http://127.0.0.1:8010",
		APIURL:      "http://127.0.0.1:8000",
		HTTPTimeout: 30 * time.Second,
		UserID:      "demo",
		SaveDir:     ".saves",
		Server: ServerConfig{
			ListenAddr: ":8000",
			DBPath:     "horizons.db",
		},
	}
}

// LoadConfig loads the configuration. Values come from the defaults, then
// the YAML file at path, then environment variables. An empty path means
// $HORIZONS_CONFIG or DefaultPath; a missing default file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("HORIZONS_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for env, field := range map[string]*string{
		"BRAIN_URL":            &cfg.BrainURL,
		"HORIZONS_API_URL":     &cfg.APIURL,
		"GEMINI_API_KEY":       &cfg.GeminiAPIKey,
		"HORIZONS_USER_ID":     &cfg.UserID,
		"HORIZONS_SAVE_DIR":    &cfg.SaveDir,
		"HORIZONS_LOG_FILE":    &cfg.LogFile,
		"HORIZONS_LISTEN_ADDR": &cfg.Server.ListenAddr,
		"HORIZONS_DB_PATH":     &cfg.Server.DBPath,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

func (c *Config) validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.UserID == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	return nil
}

// UseGemini reports whether chat should go to Gemini instead of BRAIN:
// only when BRAIN is explicitly disabled and a Gemini key is set.
func (c *Config) UseGemini() bool {
	return c.BrainURL == "" && c.GeminiAPIKey != ""
}
