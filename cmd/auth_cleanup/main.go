package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"petcare/internal/config"
	"petcare/internal/database"
	"petcare/internal/domain"
)

// Periodic maintenance, intended to run from cron: drops expired or
// long-revoked refresh tokens and stale email verification codes.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30)

	res1 := db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND created_at < ?)", now, monthAgo).
		Delete(&domain.RefreshToken{})
	if res1.Error != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", res1.Error)
	}

	res2 := db.Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&domain.EmailVerificationCode{})
	if res2.Error != nil {
		log.Fatalf("cleanup email_verification_codes failed: %v", res2.Error)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d email_verification_codes=%d",
		res1.RowsAffected, res2.RowsAffected)
}
