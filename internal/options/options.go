package options

import (
	"github.com/tech-arch1tect/mfakit/config"
)

type Options struct {
	Config              *config.Config
	DatabaseModels      []any
	EnableJWT           bool
	EnableQRCode        bool
	EnableRecoveryCodes bool
	EnableHTTP          bool
	ExtraFxOptions      []any
}

type Option func(*Options)

func WithConfig(cfg *config.Config) Option {
	return func(opts *Options) {
		opts.Config = cfg
	}
}

func WithModels(models ...any) Option {
	return func(opts *Options) {
		opts.DatabaseModels = append(opts.DatabaseModels, models...)
	}
}

func WithJWT() Option {
	return func(opts *Options) {
		opts.EnableJWT = true
	}
}

func WithQRCode() Option {
	return func(opts *Options) {
		opts.EnableQRCode = true
	}
}

func WithRecoveryCodes() Option {
	return func(opts *Options) {
		opts.EnableRecoveryCodes = true
	}
}

func WithHTTP() Option {
	return func(opts *Options) {
		opts.EnableHTTP = true
	}
}

func WithFxOptions(fxOpts ...any) Option {
	return func(opts *Options) {
		opts.ExtraFxOptions = append(opts.ExtraFxOptions, fxOpts...)
	}
}
