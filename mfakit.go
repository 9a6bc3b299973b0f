// Package mfakit provides a TOTP based multi-factor authentication
// subsystem: enrollment, code verification with lockout, recovery codes
// and an optional HTTP surface, assembled behind a small builder.
package mfakit

import (
	"github.com/tech-arch1tect/mfakit/app"
	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/internal/options"
)

type App = app.App

func New(opts ...options.Option) (*App, error) {
	return app.New(opts...)
}

func WithConfig(cfg *config.Config) options.Option {
	return options.WithConfig(cfg)
}

func WithModels(models ...any) options.Option {
	return options.WithModels(models...)
}

func WithJWT() options.Option {
	return options.WithJWT()
}

func WithQRCode() options.Option {
	return options.WithQRCode()
}

func WithRecoveryCodes() options.Option {
	return options.WithRecoveryCodes()
}

func WithHTTP() options.Option {
	return options.WithHTTP()
}

func WithFxOptions(fxOpts ...any) options.Option {
	return options.WithFxOptions(fxOpts...)
}
