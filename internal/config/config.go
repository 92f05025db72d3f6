package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no -config flag is
// given.
const DefaultFile = "truthlayer.yaml"

// Duration wraps time.Duration so YAML values like "8s" decode naturally.
type Duration time.Duration

// UnmarshalYAML decodes a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds client settings for the TruthLayer verification service.
type Config struct {
	BaseURL       string   `yaml:"base_url"`
	CheckPath     string   `yaml:"check_path"`
	ProbeTimeout  Duration `yaml:"probe_timeout"`
	SubmitTimeout Duration `yaml:"submit_timeout"`
	UserAgent     string   `yaml:"user_agent"`
	Insecure      bool     `yaml:"insecure"`
	Debug         bool     `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:       "https://api.truthlayer.dev",
		CheckPath:     "/api/check",
		ProbeTimeout:  Duration(8 * time.Second),
		SubmitTimeout: Duration(20 * time.Second),
		UserAgent:     "truthlayer-cli/1.0",
	}
}

// Load builds the effective configuration: defaults, then the YAML file (the
// given path, or DefaultFile when present), then TRUTHLAYER_* environment
// variables. A .env file in the working directory is applied to the
// environment first when present.
func Load(path string) (Config, error) {
	cfg := Default()

	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	case explicit:
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.ProbeTimeout <= 0 || c.SubmitTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = envString("TRUTHLAYER_BASE_URL", cfg.BaseURL)
	cfg.CheckPath = envString("TRUTHLAYER_CHECK_PATH", cfg.CheckPath)
	cfg.ProbeTimeout = envDuration("TRUTHLAYER_PROBE_TIMEOUT", cfg.ProbeTimeout)
	cfg.SubmitTimeout = envDuration("TRUTHLAYER_SUBMIT_TIMEOUT", cfg.SubmitTimeout)
	cfg.UserAgent = envString("TRUTHLAYER_USER_AGENT", cfg.UserAgent)
	cfg.Insecure = envBool("TRUTHLAYER_INSECURE", cfg.Insecure)
	cfg.Debug = envBool("TRUTHLAYER_DEBUG", cfg.Debug)
}

func envString(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback Duration) Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return Duration(d)
		}
	}
	return fallback
}
