package app

import (
	"fmt"

	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/database"
	"github.com/tech-arch1tect/mfakit/httpapi"
	"github.com/tech-arch1tect/mfakit/internal/options"
	"github.com/tech-arch1tect/mfakit/server"
	"github.com/tech-arch1tect/mfakit/services/jwt"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"github.com/tech-arch1tect/mfakit/services/mfa"
	"github.com/tech-arch1tect/mfakit/services/qrcode"
	"github.com/tech-arch1tect/mfakit/services/recovery"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type AppBuilder struct {
	config    *config.Config
	services  map[string]bool
	models    []any
	fxOptions []fx.Option
	errors    []error
}

func NewApp() *AppBuilder {
	return &AppBuilder{
		services:  make(map[string]bool),
		models:    make([]any, 0),
		fxOptions: make([]fx.Option, 0),
		errors:    make([]error, 0),
	}
}

func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	if cfg == nil {
		b.addError("config cannot be nil")
		return b
	}
	b.config = cfg
	return b
}

func (b *AppBuilder) WithAutoConfig() *AppBuilder {
	cfg := &config.Config{}
	if err := config.LoadConfig(cfg); err != nil {
		b.addError(fmt.Sprintf("failed to load config: %v", err))
		return b
	}
	b.config = cfg
	return b
}

// WithModels registers additional models for auto-migration alongside the
// MFA enrollment table.
func (b *AppBuilder) WithModels(models ...any) *AppBuilder {
	b.models = append(b.models, models...)
	return b
}

func (b *AppBuilder) WithJWT() *AppBuilder {
	b.services["jwt"] = true
	return b
}

func (b *AppBuilder) WithQRCode() *AppBuilder {
	b.services["qrcode"] = true
	return b
}

func (b *AppBuilder) WithRecoveryCodes() *AppBuilder {
	b.services["recovery"] = true
	return b
}

// WithHTTP enables the HTTP server and mounts the MFA route group on it.
func (b *AppBuilder) WithHTTP() *AppBuilder {
	b.services["http"] = true
	return b
}

func (b *AppBuilder) WithFxOptions(opts ...fx.Option) *AppBuilder {
	b.fxOptions = append(b.fxOptions, opts...)
	return b
}

func (b *AppBuilder) Build() (*App, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	if b.config == nil {
		if err := b.WithAutoConfig().validate(); err != nil {
			return nil, err
		}
	}

	logger, err := b.createLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := b.buildDatabase(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		config: b.config,
		logger: logger,
		db:     db,
	}

	fxOptions := b.buildFxOptions(db, logger)
	fxOptions = append(fxOptions, fx.Invoke(func(svc *mfa.Service) {
		app.mfaSvc = svc
	}))
	if b.services["http"] {
		fxOptions = append(fxOptions, fx.Invoke(func(srv *server.Server) {
			app.server = srv
		}))
	}

	app.fx = fx.New(fxOptions...)

	return app, nil
}

func (b *AppBuilder) addError(msg string) {
	b.errors = append(b.errors, fmt.Errorf("%s", msg))
}

func (b *AppBuilder) validate() error {
	if len(b.errors) > 0 {
		return fmt.Errorf("configuration errors: %v", b.errors)
	}

	// The HTTP surface issues tokens, renders QR codes and accepts
	// recovery codes, so it pulls those services in.
	if b.services["http"] {
		b.services["jwt"] = true
		b.services["qrcode"] = true
		b.services["recovery"] = true
	}

	return nil
}

func (b *AppBuilder) createLogger() (*logging.Service, error) {
	if b.config == nil {
		return nil, fmt.Errorf("config required for logger creation")
	}

	return logging.NewService(logging.Config{
		Level:      logging.LogLevel(b.config.Log.Level),
		Format:     b.config.Log.Format,
		OutputPath: b.config.Log.Output,
	})
}

func (b *AppBuilder) buildDatabase(logger *logging.Service) (*gorm.DB, error) {
	models := []any{&mfa.Enrollment{}}
	if b.services["recovery"] {
		models = append(models, &recovery.RecoveryCode{})
	}
	models = append(models, b.models...)

	return database.ProvideDatabase(b.config, database.WithModels(models...), logger)
}

func (b *AppBuilder) buildFxOptions(db *gorm.DB, logger *logging.Service) []fx.Option {
	opts := []fx.Option{
		fx.Supply(b.config),
		fx.Supply(logger),
		fx.Supply(db),
		fx.NopLogger,
		mfa.Module,
	}

	if b.services["jwt"] {
		opts = append(opts, jwt.Module)
	}
	if b.services["qrcode"] {
		opts = append(opts, qrcode.Module)
	}
	if b.services["recovery"] {
		opts = append(opts, recovery.Module)
	}
	if b.services["http"] {
		opts = append(opts, server.NewProvider(), httpapi.Module)
	}

	opts = append(opts, b.fxOptions...)

	return opts
}

// New assembles an App from functional options. It is the entry point the
// root package re-exports.
func New(opts ...options.Option) (*App, error) {
	o := &options.Options{}
	for _, opt := range opts {
		opt(o)
	}

	builder := NewApp()
	if o.Config != nil {
		builder.WithConfig(o.Config)
	}
	if len(o.DatabaseModels) > 0 {
		builder.WithModels(o.DatabaseModels...)
	}
	if o.EnableJWT {
		builder.WithJWT()
	}
	if o.EnableQRCode {
		builder.WithQRCode()
	}
	if o.EnableRecoveryCodes {
		builder.WithRecoveryCodes()
	}
	if o.EnableHTTP {
		builder.WithHTTP()
	}
	for _, extra := range o.ExtraFxOptions {
		if fxOpt, ok := extra.(fx.Option); ok {
			builder.WithFxOptions(fxOpt)
		}
	}

	return builder.Build()
}
