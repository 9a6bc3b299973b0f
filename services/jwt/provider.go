package jwt

import (
	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"go.uber.org/fx"
)

func NewProvider(cfg *config.Config, logger *logging.Service) *Service {
	return NewService(cfg, logger)
}

var Module = fx.Options(
	fx.Provide(NewProvider),
)
