package admin

import (
	"context"

	"petcare/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, role string, limit, offset int) ([]domain.User, int64, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Booking, int64, error)
}
