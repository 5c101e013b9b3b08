package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL       = "15m"
	defaultRefreshTTL         = "168h"
	defaultVerifyCodeTTL      = "5m"
	defaultVerifyResend       = "60s"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRefreshTokenPepper = "change-me-refresh-pepper"
	defaultVerifyCodePepper   = "change-me-verification-pepper"
)

// Config holds everything the API process reads from the environment.
type Config struct {
	AppEnv      string
	DatabaseURL string
	ListenAddr  string

	JWTSecret              string
	JWTAccessTTL           time.Duration
	RefreshTTL             time.Duration
	RefreshTokenPepper     string
	VerificationCodePepper string
	VerifyCodeTTL          time.Duration
	VerifyResendCooldown   time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	RedisAddr string

	GatewayMerchantID string
	GatewayPassword1  string
	GatewayPassword2  string
	GatewayBaseURL    string
	GatewayResultURL  string
	GatewaySuccessURL string
	GatewayIsTest     string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = envOrDefault("DATABASE_URL", "petcare.db")
	cfg.ListenAddr = envOrDefault("LISTEN_ADDR", ":8080")

	cfg.JWTSecret = envOrDefault("JWT_SECRET", defaultJWTSecret)
	cfg.RefreshTokenPepper = envOrDefault("REFRESH_TOKEN_PEPPER", defaultRefreshTokenPepper)
	cfg.VerificationCodePepper = envOrDefault("VERIFICATION_CODE_PEPPER", defaultVerifyCodePepper)

	if cfg.AppEnv == "prod" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in prod")
		}
		if cfg.RefreshTokenPepper == defaultRefreshTokenPepper {
			return nil, fmt.Errorf("REFRESH_TOKEN_PEPPER must be set in prod")
		}
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.VerifyCodeTTL, err = parseDurationEnv("VERIFY_CODE_TTL", defaultVerifyCodeTTL); err != nil {
		return nil, err
	}
	if cfg.VerifyResendCooldown, err = parseDurationEnv("VERIFY_RESEND_COOLDOWN", defaultVerifyResend); err != nil {
		return nil, err
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort, _ = strconv.Atoi(envOrDefault("SMTP_PORT", "587"))
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	cfg.GatewayMerchantID = os.Getenv("PAYMENT_MERCHANT_ID")
	cfg.GatewayPassword1 = os.Getenv("PAYMENT_PASSWORD1")
	cfg.GatewayPassword2 = os.Getenv("PAYMENT_PASSWORD2")
	cfg.GatewayBaseURL = envOrDefault("PAYMENT_BASE_URL", "https://pay.example.com/checkout")
	cfg.GatewayResultURL = os.Getenv("PAYMENT_RESULT_URL")
	cfg.GatewaySuccessURL = os.Getenv("PAYMENT_SUCCESS_URL")
	cfg.GatewayIsTest = envOrDefault("PAYMENT_IS_TEST", "1")

	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := envOrDefault(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
