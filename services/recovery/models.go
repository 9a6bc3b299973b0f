package recovery

import (
	"time"

	"gorm.io/gorm"
)

// RecoveryCode stores one single-use backup code as a bcrypt hash. The
// plaintext is shown exactly once, at issue time.
type RecoveryCode struct {
	gorm.Model
	IdentityKey string     `gorm:"index;not null"`
	CodeHash    string     `gorm:"not null"`
	UsedAt      *time.Time `gorm:"index"`
}
