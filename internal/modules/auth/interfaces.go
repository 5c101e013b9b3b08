package auth

import (
	"context"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	DB() *gorm.DB
}

// Mailer delivers verification codes out of band.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
