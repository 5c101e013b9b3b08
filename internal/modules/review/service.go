package review

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

// BookingGate verifies the reviewer actually finished the booking.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByService(ctx context.Context, serviceID int64, limit int) ([]domain.Review, error)
	AverageRating(ctx context.Context, serviceID int64) (float64, int64, error)
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
}

func NewService(reviews ReviewRepository, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create accepts one review per booking, only from the booking's customer
// and only once the booking is completed.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.BookingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if booking.UserID != userID || booking.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}

	exists, err := s.reviews.ExistsForBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		BookingID: req.BookingID,
		UserID:    userID,
		ServiceID: booking.ServiceID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID int64, limit int) ([]domain.Review, error) {
	if serviceID <= 0 {
		return nil, ErrInvalidRequest
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviews.ListByService(ctx, serviceID, limit)
}

func (s *Service) ServiceRating(ctx context.Context, serviceID int64) (*ServiceRatingResponse, error) {
	if serviceID <= 0 {
		return nil, ErrInvalidRequest
	}
	avg, count, err := s.reviews.AverageRating(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return &ServiceRatingResponse{ServiceID: serviceID, Average: avg, Count: count}, nil
}

func isUniqueViolation(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "23505")
}
