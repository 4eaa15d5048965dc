// Package logging configures the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared sugared logger. It is a no-op until Init runs.
var Logger = zap.NewNop().Sugar()

// Init builds the logger. Debug selects zap's development config;
// otherwise production at info level. Both use console encoding.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	Logger = logger.Sugar()
	return nil
}

// Named returns a child logger tagged with a component field.
func Named(component string) *zap.SugaredLogger {
	return Logger.With("component", component)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger.Sync()
}
