package recovery

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDisabled    = errors.New("recovery codes are disabled")
	ErrInvalidCode = errors.New("invalid recovery code")
)

const (
	codeLength = 8
	// Charset excludes I, O, 0 and 1 to avoid transcription mistakes.
	codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

// Issue replaces the identity's recovery codes with a fresh set and returns
// the plaintexts. Callers show them to the user once; only hashes persist.
func (s *Service) Issue(identity string) ([]string, error) {
	if !s.config.Recovery.Enabled {
		return nil, ErrDisabled
	}

	codes := make([]string, 0, s.config.Recovery.CodeCount)
	hashes := make([]string, 0, s.config.Recovery.CodeCount)
	for i := 0; i < s.config.Recovery.CodeCount; i++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(normalize(code)), s.config.Recovery.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash recovery code: %w", err)
		}

		codes = append(codes, code)
		hashes = append(hashes, string(hash))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("identity_key = ?", identity).Delete(&RecoveryCode{}).Error; err != nil {
			return fmt.Errorf("failed to discard previous recovery codes: %w", err)
		}

		for _, hash := range hashes {
			record := &RecoveryCode{
				IdentityKey: identity,
				CodeHash:    hash,
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to store recovery code: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("recovery codes issued",
			zap.String("identity", identity),
			zap.Int("count", len(codes)))
	}

	return codes, nil
}

// Consume validates a recovery code and marks it used. Each code works
// exactly once.
func (s *Service) Consume(identity, code string) error {
	if !s.config.Recovery.Enabled {
		return ErrDisabled
	}

	normalized := normalize(code)
	if len(normalized) != codeLength {
		return ErrInvalidCode
	}

	var records []RecoveryCode
	if err := s.db.Where("identity_key = ? AND used_at IS NULL", identity).Find(&records).Error; err != nil {
		return fmt.Errorf("failed to load recovery codes: %w", err)
	}

	for i := range records {
		if bcrypt.CompareHashAndPassword([]byte(records[i].CodeHash), []byte(normalized)) == nil {
			now := time.Now()
			records[i].UsedAt = &now
			if err := s.db.Save(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to mark recovery code used: %w", err)
			}

			if s.logger != nil {
				s.logger.Info("recovery code consumed", zap.String("identity", identity))
			}

			return nil
		}
	}

	if s.logger != nil {
		s.logger.Warn("invalid recovery code attempted", zap.String("identity", identity))
	}

	return ErrInvalidCode
}

// Remaining reports how many unused codes the identity still holds.
func (s *Service) Remaining(identity string) (int, error) {
	var count int64
	if err := s.db.Model(&RecoveryCode{}).
		Where("identity_key = ? AND used_at IS NULL", identity).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recovery codes: %w", err)
	}

	return int(count), nil
}

// IsRecoveryCodeFormat reports whether input looks like a recovery code
// rather than a six-digit TOTP code.
func IsRecoveryCodeFormat(code string) bool {
	normalized := normalize(code)
	if len(normalized) != codeLength {
		return false
	}
	for _, c := range normalized {
		if !strings.ContainsRune(codeCharset, c) {
			return false
		}
	}
	return true
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate recovery code: %w", err)
	}

	var sb strings.Builder
	sb.Grow(codeLength + 1)
	for i, b := range buf {
		if i == codeLength/2 {
			sb.WriteByte('-')
		}
		sb.WriteByte(codeCharset[int(b)%len(codeCharset)])
	}

	return sb.String(), nil
}

func normalize(code string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(code)), "-", "")
}
