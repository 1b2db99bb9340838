package logger

import (
	"grn-console/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the console logger and tees it into the Mongo log writer
func NewLogger(lc fx.Lifecycle, cfg *config.Config, writer *DBLogWriter) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Function name is only filled when the key is set
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	log := zap.New(NewDBCore(baseLogger.Core(), writer), zap.AddCaller()).
		With(zap.String("app_id", cfg.AppId))

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	lc.Append(fx.StopHook(writer.Close))

	return log, nil
}
