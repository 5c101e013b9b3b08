package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

var codeRegex = regexp.MustCompile(`^\d{6}$`)

const maxVerificationAttempts = 5

type VerifyRequestResult struct {
	Status string
}

// RequestEmailVerification issues a fresh six digit code. It always reports
// "accepted" for unknown or already verified emails so the endpoint does not
// leak which addresses exist.
func (s *Service) RequestEmailVerification(ctx context.Context, email string) (*VerifyRequestResult, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("verify/request: email not found (masked)")
			return &VerifyRequestResult{Status: "accepted"}, nil
		}
		return nil, err
	}

	if isUserEmailVerified(user) {
		return &VerifyRequestResult{Status: "accepted"}, nil
	}

	now := time.Now()
	var current domain.EmailVerificationCode
	err = s.users.DB().WithContext(ctx).Where("user_id = ?", user.ID).First(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err == nil {
		cooldownUntil := current.LastSentAt.Add(s.verifyResendCooldown)
		if cooldownUntil.After(now) {
			return nil, ErrRateLimitExceeded
		}
	}

	code, genErr := generateVerificationCode()
	if genErr != nil {
		return nil, genErr
	}
	codeHash := hashTokenWithPepper(code, s.verificationCodePepper)
	expiresAt := now.Add(s.verifyCodeTTL)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := domain.EmailVerificationCode{
			UserID:      user.ID,
			CodeHash:    codeHash,
			ResendCount: 1,
			LastSentAt:  now,
			ExpiresAt:   expiresAt,
		}
		if createErr := s.users.DB().WithContext(ctx).Create(&row).Error; createErr != nil {
			return nil, createErr
		}
	} else {
		if updateErr := s.users.DB().WithContext(ctx).
			Model(&domain.EmailVerificationCode{}).
			Where("user_id = ?", user.ID).
			Updates(map[string]any{
				"code_hash":    codeHash,
				"last_sent_at": now,
				"expires_at":   expiresAt,
				"attempts":     0,
				"resend_count": gorm.Expr("resend_count + 1"),
				"used_at":      nil,
			}).Error; updateErr != nil {
			return nil, updateErr
		}
	}

	if mailErr := s.mailer.SendVerificationCode(ctx, user.Email, code); mailErr != nil {
		return nil, mailErr
	}

	return &VerifyRequestResult{Status: "accepted"}, nil
}

func (s *Service) ConfirmEmailVerification(ctx context.Context, email, code string) error {
	if !codeRegex.MatchString(code) {
		return ErrInvalidVerificationCodeFormat
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerificationCode
		}
		return err
	}

	now := time.Now()
	var row domain.EmailVerificationCode
	if err := s.users.DB().WithContext(ctx).Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerificationCode
		}
		return err
	}

	if row.UsedAt != nil || !row.ExpiresAt.After(now) {
		return ErrInvalidVerificationCode
	}

	inputHash := hashTokenWithPepper(code, s.verificationCodePepper)
	if inputHash != row.CodeHash {
		attempts := row.Attempts + 1
		if updateErr := s.users.DB().WithContext(ctx).
			Model(&domain.EmailVerificationCode{}).
			Where("user_id = ?", user.ID).
			Update("attempts", attempts).Error; updateErr != nil {
			return updateErr
		}
		if attempts >= maxVerificationAttempts {
			return ErrTooManyAttempts
		}
		return ErrInvalidVerificationCode
	}

	return s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("users").Where("id = ?", user.ID).Updates(map[string]any{
			"email_verified":    true,
			"email_verified_at": now,
			"updated_at":        now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&domain.EmailVerificationCode{}).Where("user_id = ?", user.ID).Updates(map[string]any{
			"used_at": now,
		}).Error
	})
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
