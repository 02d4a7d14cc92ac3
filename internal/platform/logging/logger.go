package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a named zap logger for the given environment.
// Development output is human readable; anything else gets production JSON.
// Both write to stderr so stdout stays free for program output.
func New(appEnv, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if appEnv == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return log.Named(name), nil
}
