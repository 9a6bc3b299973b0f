package testutils

import (
	"time"

	"github.com/tech-arch1tect/mfakit/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "Test App",
			URL:  "http://localhost:8080",
		},
		TOTP: config.TOTPConfig{
			Issuer: "Test App",
			Digits: 6,
			Period: 30,
			Skew:   1,
		},
		Lockout: config.LockoutConfig{
			MaxAttempts: 5,
			Duration:    15 * time.Minute,
			Store:       "memory",
		},
		JWT: config.JWTConfig{
			SecretKey:     "k9f2m7x4q8w1z5v3b6n0j2h5g8d1s4a7",
			Algorithm:     "HS256",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 720 * time.Hour,
			Issuer:        "test-issuer",
		},
		Recovery: config.RecoveryConfig{
			Enabled:    true,
			CodeCount:  10,
			BcryptCost: bcrypt.MinCost,
		},
		QRCode: config.QRCodeConfig{
			Size: 256,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
	}
}

var TestIdentities = struct {
	Student string
	Faculty string
	Admin   string
}{
	Student: "student@example.com",
	Faculty: "faculty@example.com",
	Admin:   "admin@example.com",
}
