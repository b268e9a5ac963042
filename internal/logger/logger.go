package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init sets up the global zap logger for the given environment. Call it once
// at startup; afterwards use zap.L().
func Init(env string) error {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to create zap logger -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
