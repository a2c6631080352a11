package memory

import (
	"errors"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config defines a public type used by memory APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Redis   RedisConfig
	Session SessionConfig
	Metrics MetricsConfig
}

/*
====================================
REDIS CONFIG
====================================
*/

// RedisConfig defines a public type used by memory APIs.
//
// RedisConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by memory APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// KeyPrefix namespaces every backend key. It may be empty, in which case
	// sessions are keyed by their raw identifier.
	KeyPrefix string `env:"SESSION_KEY_PREFIX,default=mem:"`
	// DefaultTTL is the process-wide expiry applied when a session carries no
	// override of its own. Zero means sessions persist until explicitly closed.
	DefaultTTL time.Duration `env:"SESSION_DEFAULT_TTL,default=0s"`
	// MaxSessionSize caps the encoded payload in bytes. Zero disables the cap.
	MaxSessionSize int `env:"SESSION_MAX_SIZE,default=0"`
}

// MetricsConfig defines a public type used by memory APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool `env:"MEMORY_METRICS_ENABLED,default=false"`
	EnableLatencyHistograms bool `env:"MEMORY_METRICS_LATENCY,default=false"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		Session: SessionConfig{
			KeyPrefix:      "mem:",
			DefaultTTL:     0,
			MaxSessionSize: 0,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// FromEnv builds a Config from environment variables using envdecode struct
// tags; unset variables fall back to the tag defaults.
//
// FromEnv may return an error when input validation, dependency calls, or security checks fail.
// FromEnv does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Redis. Addr is checked by Open, not here: New accepts an injected client
	// and ignores the connection parameters entirely.
	if c.Redis.DB < 0 {
		return errors.New("Redis DB must be >= 0")
	}

	// Session
	if c.Session.DefaultTTL < 0 {
		return errors.New("Session DefaultTTL must be >= 0")
	}
	if c.Session.DefaultTTL > 0 && c.Session.DefaultTTL < time.Second {
		return errors.New("Session DefaultTTL must be at least 1s when set")
	}
	if c.Session.MaxSessionSize < 0 {
		return errors.New("Session MaxSessionSize must be >= 0")
	}
	if strings.ContainsAny(c.Session.KeyPrefix, " \t\r\n") {
		return errors.New("Session KeyPrefix must not contain whitespace")
	}

	return nil
}
