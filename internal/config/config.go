package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/finreply/internal/present"
	"github.com/mithrel/finreply/internal/render"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < .env < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence;
	// these paths are fallbacks.
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "finreply"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "finreply"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file on the search path is fine; a named file must exist and parse.
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Environment variables: FINREPLY_* (highest among these sources)
	v.SetEnvPrefix("finreply")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("render.card_marker")) == "" {
		v.Set("render.card_marker", render.DefaultMarker)
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "finreply", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for `finreply serve`"},

		{Key: "render.card_marker", Default: render.DefaultMarker, Comment: "Literal token that precedes each embedded card payload"},

		{Key: "output.format", Default: "", Comment: "Default output format: html|json|ndjson|pretty (empty: pretty on a terminal, html otherwise)"},
		{Key: "output.style", Default: "dark", Comment: "Glamour style used by the pretty format (dark|light|dracula|notty|ascii|pink|tokyo-night)"},
		{Key: "output.width", Default: 80, Comment: "Word wrap width for the pretty format"},
		{Key: "output.json_indent", Default: false, Comment: "Indent json output"},

		{Key: "auth.token", Default: "", Comment: "Bearer token required by the render API (empty disables auth)"},
		{Key: "server.max_body_bytes", Default: 1 << 20, Comment: "Maximum accepted request body size"},
		{Key: "server.shutdown_timeout", Default: "5s", Comment: "Graceful shutdown timeout"},

		{Key: "batch.workers", Default: 4, Comment: "Concurrent renders for `finreply render --batch`"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug|info|warn|error"},
		{Key: "log.dev", Default: false, Comment: "Human-readable console logs instead of JSON"},
	}
}

var glamourStyles = map[string]bool{
	"dark": true, "light": true, "dracula": true, "notty": true,
	"ascii": true, "pink": true, "tokyo-night": true, "auto": true,
}

// CheckConfigValidity reports every invalid setting in one error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("render.card_marker")) == "" {
		errs = append(errs, errors.New("render.card_marker is required"))
	}
	if f := v.GetString("output.format"); f != "" {
		if _, err := present.ParseMode(f); err != nil {
			errs = append(errs, fmt.Errorf("output.format: %w", err))
		}
	}
	if s := v.GetString("output.style"); !glamourStyles[s] {
		errs = append(errs, fmt.Errorf("output.style %q is not a known style", s))
	}
	if v.GetInt("output.width") <= 0 {
		errs = append(errs, errors.New("output.width must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if v.GetInt64("server.max_body_bytes") <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be greater than 0"))
	}
	if v.GetDuration("server.shutdown_timeout") <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be a positive duration"))
	}
	if v.GetInt("batch.workers") <= 0 {
		errs = append(errs, errors.New("batch.workers must be greater than 0"))
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is invalid", v.GetString("log.level")))
	}
	return errors.Join(errs...)
}
