package mfa

import (
	"gorm.io/gorm"
)

// Enrollment is the per-identity MFA record. Secret is empty until
// enrollment begins and Activated flips only after the first successful
// verification.
type Enrollment struct {
	gorm.Model
	IdentityKey string `json:"identity_key" gorm:"uniqueIndex;not null"`
	Secret      string `json:"-"`
	Activated   bool   `json:"activated" gorm:"not null;default:false"`
}
