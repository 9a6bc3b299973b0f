package mfa

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/otp"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	config   *config.Config
	db       *gorm.DB
	logger   *logging.Service
	lockouts LockoutStore
	locks    sync.Map
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service, lockouts LockoutStore) *Service {
	if logger != nil {
		logger.Info("initializing MFA service",
			zap.String("issuer", cfg.TOTP.Issuer),
			zap.Int("max_attempts", cfg.Lockout.MaxAttempts),
			zap.Duration("lockout_duration", cfg.Lockout.Duration))
	}

	return &Service{
		config:   cfg,
		db:       db,
		logger:   logger,
		lockouts: lockouts,
	}
}

type EnrollmentResult struct {
	Secret          string
	ProvisioningURI string
}

type VerifyResult struct {
	// Activated is true when this verification completed a pending
	// enrollment rather than authenticating an already-active identity.
	Activated bool
}

type StatusResult struct {
	Active  bool
	Pending bool
}

// BeginEnrollment provisions a fresh secret for the identity and returns it
// together with the otpauth provisioning URI. Calling it again while the
// enrollment is still pending discards the previous secret and issues a new
// one; calling it once MFA is active fails with ErrAlreadyActive.
func (s *Service) BeginEnrollment(identity string) (*EnrollmentResult, error) {
	if s.logger != nil {
		s.logger.Info("beginning MFA enrollment", zap.String("identity", identity))
	}

	var enrollment Enrollment
	err := s.db.Where("identity_key = ?", identity).First(&enrollment).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		if s.logger != nil {
			s.logger.Error("failed to look up enrollment",
				zap.Error(err),
				zap.String("identity", identity))
		}
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	if found && enrollment.Activated {
		if s.logger != nil {
			s.logger.Warn("enrollment attempted but MFA is already active",
				zap.String("identity", identity))
		}
		return nil, ErrAlreadyActive
	}

	secret, err := otp.GenerateSecret()
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to generate MFA secret",
				zap.Error(err),
				zap.String("identity", identity))
		}
		return nil, err
	}

	if found {
		// Pending enrollment restarts from scratch with a fresh secret.
		enrollment.Secret = secret
		enrollment.Activated = false
		if err := s.db.Save(&enrollment).Error; err != nil {
			return nil, fmt.Errorf("failed to replace pending secret: %w", err)
		}
	} else {
		enrollment = Enrollment{
			IdentityKey: identity,
			Secret:      secret,
			Activated:   false,
		}
		if err := s.db.Create(&enrollment).Error; err != nil {
			return nil, fmt.Errorf("failed to store enrollment: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("MFA enrollment pending activation",
			zap.String("identity", identity),
			zap.Uint("enrollment_id", enrollment.ID))
	}

	return &EnrollmentResult{
		Secret:          secret,
		ProvisioningURI: otp.ProvisioningURI(s.issuer(), identity, secret, s.config.TOTP.Digits, s.config.TOTP.Period),
	}, nil
}

// Verify checks a candidate code against the identity's secret at the given
// clock. It is the single verification entry point: the first success on a
// pending enrollment activates MFA, later successes authenticate. Failures
// count toward the lockout threshold; while locked, calls are rejected
// without consuming an attempt.
func (s *Service) Verify(identity, code string, now time.Time) (*VerifyResult, error) {
	mu := s.identityLock(identity)
	mu.Lock()
	defer mu.Unlock()

	state, _ := s.lockouts.Get(identity)
	if !state.LockedUntil.IsZero() {
		if now.Before(state.LockedUntil) {
			if s.logger != nil {
				s.logger.Warn("MFA verification rejected - identity locked",
					zap.String("identity", identity),
					zap.Time("locked_until", state.LockedUntil))
			}
			return nil, &LockedError{RetryAfter: state.LockedUntil.Sub(now)}
		}

		// Lockout expired: the state resets as if fresh.
		s.lockouts.Reset(identity)
		state = LockoutState{}
	}

	var enrollment Enrollment
	err := s.db.Where("identity_key = ?", identity).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && enrollment.Secret == "") {
		if s.logger != nil {
			s.logger.Warn("MFA verification attempted without enrollment",
				zap.String("identity", identity))
		}
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	valid, err := otp.Validate(enrollment.Secret, code, now, otp.Options{
		Digits: s.config.TOTP.Digits,
		Period: s.config.TOTP.Period,
		Skew:   s.config.TOTP.Skew,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("stored MFA secret is unreadable",
				zap.Error(err),
				zap.String("identity", identity))
		}
		return nil, fmt.Errorf("failed to verify code: %w", err)
	}

	if valid {
		s.lockouts.Reset(identity)

		activated := false
		if !enrollment.Activated {
			enrollment.Activated = true
			if err := s.db.Save(&enrollment).Error; err != nil {
				return nil, fmt.Errorf("failed to activate enrollment: %w", err)
			}
			activated = true
		}

		if s.logger != nil {
			s.logger.Info("MFA code verified",
				zap.String("identity", identity),
				zap.Bool("activated", activated))
		}

		return &VerifyResult{Activated: activated}, nil
	}

	state.Failures++
	if state.Failures >= s.config.Lockout.MaxAttempts {
		state.LockedUntil = now.Add(s.config.Lockout.Duration)
		s.lockouts.Set(identity, state)

		if s.logger != nil {
			s.logger.Warn("MFA lockout threshold reached",
				zap.String("identity", identity),
				zap.Int("failures", state.Failures),
				zap.Time("locked_until", state.LockedUntil))
		}

		return nil, &LockedError{RetryAfter: s.config.Lockout.Duration}
	}

	s.lockouts.Set(identity, state)

	remaining := s.config.Lockout.MaxAttempts - state.Failures
	if s.logger != nil {
		s.logger.Warn("MFA verification failed - invalid code",
			zap.String("identity", identity),
			zap.Int("attempts_remaining", remaining))
	}

	return nil, &InvalidCodeError{AttemptsRemaining: remaining}
}

// Status reports whether the identity has active MFA. Unknown identities
// are simply inactive, never an error.
func (s *Service) Status(identity string) (*StatusResult, error) {
	var enrollment Enrollment
	err := s.db.Where("identity_key = ?", identity).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StatusResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	return &StatusResult{
		Active:  enrollment.Activated,
		Pending: enrollment.Secret != "" && !enrollment.Activated,
	}, nil
}

// Disable removes the identity's enrollment entirely. A later
// BeginEnrollment starts over with a new secret.
func (s *Service) Disable(identity string) error {
	// Hard delete: the unique identity index must be free for re-enrollment.
	result := s.db.Unscoped().Where("identity_key = ?", identity).Delete(&Enrollment{})
	if result.Error != nil {
		return fmt.Errorf("failed to disable MFA: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotEnrolled
	}

	s.lockouts.Reset(identity)

	if s.logger != nil {
		s.logger.Info("MFA disabled", zap.String("identity", identity))
	}

	return nil
}

func (s *Service) issuer() string {
	if s.config.TOTP.Issuer == "" {
		return s.config.App.Name
	}
	return s.config.TOTP.Issuer
}

// identityLock serializes verification per identity so two concurrent wrong
// attempts cannot both read the same failure count and skip the threshold.
func (s *Service) identityLock(identity string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(identity, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
