package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the optimizer binaries read from the environment.
type Config struct {
	AppEnv          string        `validate:"required,oneof=development production"`
	RouteAPIKey     string        `validate:"required"`
	RouteAPIURL     string        `validate:"required,url"`
	RouteAPITimeout time.Duration `validate:"gt=0"`
	DBPath          string
	DatabaseURL     string
	Port            int `validate:"min=1,max=65535"`
}

var validate = validator.New()

// LoadDotenv loads a .env file from the working directory when one exists.
// It reports whether a file was loaded so callers can log the fallback.
func LoadDotenv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from the environment and validates it.
// defaultDBPath applies when DB_PATH is unset; pass "" to leave history disabled.
func Load(defaultDBPath string) (*Config, error) {
	timeout, err := time.ParseDuration(Get("ROUTE_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("load config: parse ROUTE_API_TIMEOUT: %w", err)
	}

	port, err := strconv.Atoi(strings.TrimSpace(Get("PORT", "8080")))
	if err != nil {
		return nil, fmt.Errorf("load config: PORT must be an integer: %w", err)
	}

	cfg := &Config{
		AppEnv:          Get("APP_ENV", "development"),
		RouteAPIKey:     strings.TrimSpace(os.Getenv("ROUTE_API_KEY")),
		RouteAPIURL:     strings.TrimRight(Get("ROUTE_API_BASE_URL", "http://api.traffic.mock"), "/"),
		RouteAPITimeout: timeout,
		DBPath:          Get("DB_PATH", defaultDBPath),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:            port,
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return nil, fmt.Errorf("load config: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var envNames = map[string]string{
	"AppEnv":          "APP_ENV",
	"RouteAPIKey":     "ROUTE_API_KEY",
	"RouteAPIURL":     "ROUTE_API_BASE_URL",
	"RouteAPITimeout": "ROUTE_API_TIMEOUT",
	"Port":            "PORT",
}

func formatFieldError(fe validator.FieldError) string {
	name := envNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return name + " must be one of: " + fe.Param()
	case "url":
		return name + " must be a valid URL"
	case "min", "max":
		return name + " must be between 1 and 65535"
	case "gt":
		return name + " must be positive"
	default:
		return name + " failed " + fe.Tag() + " validation"
	}
}
