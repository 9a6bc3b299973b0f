package mfa

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyActive = errors.New("MFA is already active for this identity")
	ErrNotEnrolled   = errors.New("no MFA secret on file for this identity")
)

// InvalidCodeError reports a wrong code along with how many attempts remain
// before the identity is locked out.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid MFA code (%d attempts remaining)", e.AttemptsRemaining)
}

// LockedError reports that verification is rate-limited for the identity.
// RetryAfter is measured from the clock passed to the rejected call.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("MFA verification locked, retry after %s", e.RetryAfter)
}
