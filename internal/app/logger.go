package app

import (
	"github.com/geraldDev01/onboarding-dashboard/internal/config"

	"go.uber.org/zap"
)

// NewLogger picks the zap preset for the environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
