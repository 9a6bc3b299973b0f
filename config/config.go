package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	TOTP     TOTPConfig     `envPrefix:"TOTP_"`
	Lockout  LockoutConfig  `envPrefix:"LOCKOUT_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`
	Recovery RecoveryConfig `envPrefix:"RECOVERY_"`
	QRCode   QRCodeConfig   `envPrefix:"QRCODE_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"mfakit Application"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"localhost"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"mfakit.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type TOTPConfig struct {
	Issuer string `env:"ISSUER"`
	Digits int    `env:"DIGITS" envDefault:"6"`
	Period int    `env:"PERIOD" envDefault:"30"`
	Skew   int    `env:"SKEW" envDefault:"1"`
}

type LockoutConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	Duration    time.Duration `env:"DURATION" envDefault:"15m"`
	Store       string        `env:"STORE" envDefault:"memory"`
}

type JWTConfig struct {
	SecretKey     string        `env:"SECRET_KEY"`
	Algorithm     string        `env:"ALGORITHM" envDefault:"HS256"`
	AccessExpiry  time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"720h"`
	Issuer        string        `env:"ISSUER" envDefault:"mfakit"`
}

type RecoveryConfig struct {
	Enabled    bool `env:"ENABLED" envDefault:"true"`
	CodeCount  int  `env:"CODE_COUNT" envDefault:"10"`
	BcryptCost int  `env:"BCRYPT_COST" envDefault:"10"`
}

type QRCodeConfig struct {
	Size int `env:"SIZE" envDefault:"256"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	if c, ok := cfg.(*Config); ok {
		return validateConfig(c)
	}

	return nil
}

func validateConfig(cfg *Config) error {
	if err := validateJWTConfig(&cfg.JWT); err != nil {
		return err
	}
	if err := validateLockoutConfig(&cfg.Lockout); err != nil {
		return err
	}
	return validateTOTPConfig(&cfg.TOTP)
}

func validateJWTConfig(cfg *JWTConfig) error {
	if cfg.SecretKey == "" {
		return nil
	}

	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("JWT secret key must be at least 32 characters long")
	}

	weakPatterns := []string{"password", "secret", "test", "example", "default", "change"}
	lowered := strings.ToLower(cfg.SecretKey)
	for _, pattern := range weakPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("JWT secret key contains weak patterns")
		}
	}

	return nil
}

func validateLockoutConfig(cfg *LockoutConfig) error {
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("lockout max attempts must be at least 1")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("lockout duration must be positive")
	}
	return nil
}

func validateTOTPConfig(cfg *TOTPConfig) error {
	if cfg.Digits < 6 || cfg.Digits > 8 {
		return fmt.Errorf("TOTP digits must be between 6 and 8")
	}
	if cfg.Period < 1 {
		return fmt.Errorf("TOTP period must be positive")
	}
	if cfg.Skew < 0 {
		return fmt.Errorf("TOTP skew cannot be negative")
	}
	return nil
}
