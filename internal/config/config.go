// Package config defines the process configuration for the Holocene
// data-access layer. Configuration is loaded once at startup and is immutable
// thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Secret references (Lowest)
//
// Any missing required value or invalid format is reported as a ConfigError so
// the process can fail fast.
package config

import (
	"time"

	"holocene/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type used
// for connection strings.
type SecretString = types.SecretString

// Config is the top-level configuration struct.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod" yaml:"environment"`
	Service     string `envconfig:"SERVICE_NAME" default:"holocene" yaml:"service"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error" yaml:"log_level"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json console" yaml:"log_format"`

	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo `ignored:"true" yaml:"build"`
}

// ServerConfig holds HTTP server settings for `holocene serve`.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080" yaml:"port"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s" yaml:"shutdown_timeout"`

	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*" yaml:"cors_allowed_origins"`
	// Header carrying the portal username, attached to every call log.
	CallerHeader string `envconfig:"CALLER_HEADER" default:"X-Holocene-User" yaml:"caller_header"`
}

// DatabaseConfig holds one connection string per store plus shared pool tuning.
// Only the Holocene store is required; the others may be left empty and are
// reported as not configured when used.
type DatabaseConfig struct {
	Holocene  SecretString `envconfig:"HOLOCENE_DATABASE_URL" validate:"required" yaml:"holocene"`
	MIK       SecretString `envconfig:"MIK_DATABASE_URL" yaml:"mik"`
	QR        SecretString `envconfig:"QR_DATABASE_URL" yaml:"qr"`
	QRReports SecretString `envconfig:"QR_REPORTS_DATABASE_URL" yaml:"qr_reports"`
	AltData   SecretString `envconfig:"ALTDATA_DATABASE_URL" yaml:"altdata"`

	// Per-command timeout applied to every store.
	SQLTimeout time.Duration `envconfig:"SQL_TIMEOUT" default:"30s" validate:"gt=0" yaml:"sql_timeout"`

	// Tuning Parameters
	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"10" validate:"gte=0" yaml:"max_conns"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2" validate:"gte=0" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m" yaml:"conn_max_lifetime"`
	PingTimeout     time.Duration `envconfig:"DB_PING_TIMEOUT" default:"10s" yaml:"ping_timeout"`
	TraceQueries    bool          `envconfig:"DB_TRACE_QUERIES" default:"false" yaml:"trace_queries"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildTime string `yaml:"build_time"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrSecretResolution indicates a secret reference could not be resolved.
	ErrSecretResolution ConfigErrorType = "SECRET_FAILURE"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
