package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultTemplate = "היי {name}! 🎉\nנשמח לראותך ב-12.09.25.\nרשום/י כן, לא, או אולי."

// Config holds the application configuration
type Config struct {
	GreenID    string `env:"GREEN_ID,required"`
	GreenToken string `env:"GREEN_TOKEN,required"`
	Template   string `env:"DEFAULT_MSG"`
	StorePath  string `env:"STORE_PATH" envDefault:"heb_rsvp.xlsx"`
	Port       string `env:"PORT" envDefault:"10000"`
}

// Load reads configuration from the environment, after loading a local .env
// file if one is present. Missing Green API credentials fail startup.
func Load() (*Config, error) {
	// .env is optional; in deployment the variables come from the platform.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Template == "" {
		cfg.Template = defaultTemplate
	}
	if !strings.Contains(cfg.Template, "{name}") {
		return nil, fmt.Errorf("DEFAULT_MSG must contain the {name} placeholder")
	}

	return cfg, nil
}
