package domain

import "time"

// RefreshToken is an opaque server-side session token. Only the peppered
// hash is stored; tokens rotate on every refresh and share a family id so
// a detected reuse revokes the whole chain.
type RefreshToken struct {
	ID          int64      `gorm:"primaryKey"`
	UserID      int64      `gorm:"index;not null"`
	TokenHash   string     `gorm:"uniqueIndex;not null"`
	FamilyID    string     `gorm:"index;not null"`
	RotatedFrom *int64
	ExpiresAt   time.Time `gorm:"not null"`
	UsedAt      *time.Time
	RevokedAt   *time.Time
	UserAgent   *string
	IP          *string
	CreatedAt   time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// EmailVerificationCode holds the single active verification code per user.
type EmailVerificationCode struct {
	UserID      int64  `gorm:"primaryKey"`
	CodeHash    string `gorm:"not null"`
	Attempts    int
	ResendCount int
	LastSentAt  time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
	CreatedAt   time.Time
}

func (EmailVerificationCode) TableName() string { return "email_verification_codes" }
