package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL es el endpoint productivo del backend FisiMaster.
const DefaultAPIURL = "https://api-fisimaster.onrender.com"

// Config del cliente. Se carga (opcionalmente) desde YAML y después se
// aplican overrides por env; solo con env también funciona.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	SlowTimeout time.Duration `yaml:"slow_timeout"`
}

type SessionConfig struct {
	// Path del archivo que guarda la sesión persistida.
	// Default: $HOME/.fisiomaster/user.json
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load carga la config. path puede ser "" (solo defaults + env).
// Env soportadas: API_URL, SESSION_PATH, LOG_LEVEL, LOG_FORMAT.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		// Permite ${VAR} dentro del YAML, como en deploys con secrets.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("API_URL")); v != "" {
		cfg.API.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_PATH")); v != "" {
		cfg.Session.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.API.URL) == "" {
		cfg.API.URL = DefaultAPIURL
	}
	if cfg.Session.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Session.Path = filepath.Join(home, ".fisiomaster", "user.json")
	}
	// Timeouts en cero se resuelven en httpclient (30s / 120s).
}
