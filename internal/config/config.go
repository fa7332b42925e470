// Package config loads splitledger configuration from environment variables
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server
	Port int

	// Logging
	LogLevel string

	// Fixtures replayed into the ledger at startup
	SeedFile string

	// Auth: mutating RPCs require a token when JWTSecret is set
	JWTSecret            string
	TokenDuration        time.Duration
	Operator             string
	OperatorPasswordHash string

	// Events: published to AMQP when AMQPURL is set
	AMQPURL      string
	AMQPExchange string

	// Client side (ledgerctl)
	ServerURL string
	Token     string
}

// Load loads configuration from environment variables.
// It loads .env from the current directory if present; a custom path can be
// given instead, in which case the file must exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	tokenDuration, err := getEnvDuration("TOKEN_DURATION", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 port,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SeedFile:             os.Getenv("SEED_FILE"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenDuration:        tokenDuration,
		Operator:             getEnv("OPERATOR", "admin"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		AMQPURL:              os.Getenv("AMQP_URL"),
		AMQPExchange:         getEnv("AMQP_EXCHANGE", "splitledger"),
		ServerURL:            os.Getenv("SERVER_URL"),
		Token:                os.Getenv("TOKEN"),
	}, nil
}

// AuthEnabled reports whether mutating RPCs require a token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be debug, info, warn or error", c.LogLevel))
	}

	if c.AuthEnabled() {
		if len(c.JWTSecret) < 16 {
			problems = append(problems, "JWT secret must be at least 16 characters")
		}
		if c.TokenDuration <= 0 {
			problems = append(problems, "token duration must be positive")
		}
		if c.Operator == "" {
			problems = append(problems, "operator name cannot be empty when auth is enabled")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
