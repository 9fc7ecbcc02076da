package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
	"github.com/Ikanga93/ritt-ai-assistant/internal/logging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the runtime configuration for rittmatch.
type Config struct {
	CatalogPath string  `yaml:"catalog" env:"RITT_CATALOG"`
	CatalogURL  string  `yaml:"catalog_url" env:"RITT_CATALOG_URL" validate:"omitempty,url"`
	Restaurant  string  `yaml:"restaurant" env:"RITT_RESTAURANT"`
	Threshold   float64 `yaml:"threshold" env:"RITT_THRESHOLD" validate:"gte=0,lte=1"`
	LogLevel    string  `yaml:"log_level" env:"RITT_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold: fuzzy.DefaultThreshold,
		LogLevel:  logging.DefaultLevel,
	}
}

// Load layers defaults, the YAML file at path (if path is not empty) and
// RITT_* environment variables, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decodeInto(f, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates the
// result. Environment variables are not consulted.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decodeInto(r, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeInto(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: rule %q failed for value %v", fieldName(fe.StructField()), ruleText(fe), fe.Value()))
		}
		return fmt.Errorf("config: invalid %s", strings.Join(msgs, "; "))
	}
	return nil
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// fieldName maps a struct field onto its YAML key for error messages.
func fieldName(field string) string {
	switch field {
	case "CatalogPath":
		return "catalog"
	case "CatalogURL":
		return "catalog_url"
	case "LogLevel":
		return "log_level"
	default:
		return strings.ToLower(field)
	}
}
