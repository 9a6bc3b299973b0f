package mfa

import (
	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func NewProvider(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return NewService(cfg, db, logger, NewLockoutStore(&cfg.Lockout))
}

var Module = fx.Options(
	fx.Provide(NewProvider),
)
