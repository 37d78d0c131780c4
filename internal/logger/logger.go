package logger

import (
	"go-datasync/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Production gets JSON output,
// everything else the human-readable development encoder.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build(zap.AddCaller())
}
