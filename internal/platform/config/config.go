package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyServiceName    = "SERVICE_NAME"
	KeyServiceVersion = "SERVICE_VERSION"
	KeyEnvironment    = "APP_ENV"
	KeyHTTPPort       = "HTTP_PORT"
	KeyPostgresDSN    = "POSTGRES_DSN"
	KeyInternalKey    = "INTERNAL_API_KEY"
	KeyAllowedOrigins = "ALLOWED_ORIGINS"
	KeyLogLevel       = "LOG_LEVEL"
	KeyLogFormat      = "LOG_FORMAT"
	KeyAutoMigrate    = "AUTO_MIGRATE"

	EnvProduction = "production"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	HTTPPort       string
	PostgresDSN    string
	InternalKey    string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	AutoMigrate    bool
}

func (c Config) Production() bool {
	return c.Environment == EnvProduction
}

// NewViper returns a viper instance reading the process environment with
// the service defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyServiceName, "erp-interno")
	v.SetDefault(KeyServiceVersion, "1.0.0")
	v.SetDefault(KeyEnvironment, "development")
	v.SetDefault(KeyHTTPPort, "8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyAutoMigrate, "false")
	return v
}

// LoadDotEnv loads variables from the given files without overriding the
// environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return LoadFrom(NewViper())
}

func LoadFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServiceName:    strings.TrimSpace(v.GetString(KeyServiceName)),
		ServiceVersion: strings.TrimSpace(v.GetString(KeyServiceVersion)),
		Environment:    strings.ToLower(strings.TrimSpace(v.GetString(KeyEnvironment))),
		HTTPPort:       strings.TrimSpace(v.GetString(KeyHTTPPort)),
		PostgresDSN:    strings.TrimSpace(v.GetString(KeyPostgresDSN)),
		InternalKey:    v.GetString(KeyInternalKey),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		AutoMigrate:    parseBool(v.GetString(KeyAutoMigrate), false),
	}
	cfg.AllowedOrigins = splitList(v.GetString(KeyAllowedOrigins))
	if len(cfg.AllowedOrigins) == 0 && !v.IsSet(KeyAllowedOrigins) && !cfg.Production() {
		cfg.AllowedOrigins = []string{"*"}
	}

	if cfg.Production() && cfg.PostgresDSN == "" {
		return Config{}, errors.New("POSTGRES_DSN is required in production")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
