package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
	ErrSelfDemotion = errors.New("admins cannot change their own role")
)

// Service is the admin back office: user management and a global view of
// bookings.
type Service struct {
	users    UserRepository
	bookings BookingRepository
}

func NewService(users UserRepository, bookings BookingRepository) *Service {
	return &Service{users: users, bookings: bookings}
}

func (s *Service) ListUsers(ctx context.Context, role string, page, limit int) ([]domain.User, int64, error) {
	if role != "" && !validRole(role) {
		return nil, 0, ErrInvalidRole
	}
	limit, offset := pagination(page, limit)

	users, total, err := s.users.List(ctx, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

// UpdateUserRole promotes or demotes a user. An admin cannot touch their
// own role so the last admin cannot lock everyone out.
func (s *Service) UpdateUserRole(ctx context.Context, userID, adminID int64, role string) (*domain.User, error) {
	if !validRole(role) {
		return nil, ErrInvalidRole
	}
	if userID == adminID {
		return nil, ErrSelfDemotion
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID, adminID int64) error {
	if userID == adminID {
		return ErrSelfDemotion
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *Service) ListBookings(ctx context.Context, status string, page, limit int) ([]domain.Booking, int64, error) {
	limit, offset := pagination(page, limit)
	return s.bookings.ListAll(ctx, status, limit, offset)
}

func pagination(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}

func validRole(role string) bool {
	switch domain.UserRole(role) {
	case domain.RoleCustomer, domain.RoleTrainer, domain.RoleAdmin:
		return true
	}
	return false
}
