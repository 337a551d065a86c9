package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Params struct {
	fx.In

	LogLevel zapcore.Level
}

func NewLogger(p Params) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	// production mode
	if p.LogLevel == zapcore.WarnLevel {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(p.LogLevel)
		logger, err = config.Build()
	} else {
		// development mode, more detailed logging
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(p.LogLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = config.Build()
	}
	if err != nil {
		return nil, err
	}

	// Record conversions log parse diagnostics through the global.
	zap.ReplaceGlobals(logger)
	return logger, nil
}
