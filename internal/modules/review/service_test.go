package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcare/internal/domain"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	rv.ID = 1
	return args.Error(0)
}

func (m *mockReviewRepo) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByService(ctx context.Context, serviceID int64, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, serviceID, limit)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) AverageRating(ctx context.Context, serviceID int64) (float64, int64, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type mockBookingGate struct {
	mock.Mock
}

func (m *mockBookingGate) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestService_Create_OnlyCompletedOwnBooking(t *testing.T) {
	reviews := new(mockReviewRepo)
	bookings := new(mockBookingGate)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 42, ServiceID: 3, Status: domain.BookingCompleted,
	}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(1)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(reviews, bookings)

	rv, err := svc.Create(context.Background(), 42, CreateReviewRequest{BookingID: 1, Rating: 5, Comment: "great"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), rv.ServiceID)

	// other user's booking
	_, err = svc.Create(context.Background(), 7, CreateReviewRequest{BookingID: 1, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestService_Create_PendingBookingRejected(t *testing.T) {
	reviews := new(mockReviewRepo)
	bookings := new(mockBookingGate)

	bookings.On("GetByID", mock.Anything, int64(2)).Return(&domain.Booking{
		ID: 2, UserID: 42, Status: domain.BookingPending,
	}, nil)

	svc := NewService(reviews, bookings)

	_, err := svc.Create(context.Background(), 42, CreateReviewRequest{BookingID: 2, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestService_Create_OneReviewPerBooking(t *testing.T) {
	reviews := new(mockReviewRepo)
	bookings := new(mockBookingGate)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 42, Status: domain.BookingCompleted,
	}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(1)).Return(true, nil)

	svc := NewService(reviews, bookings)

	_, err := svc.Create(context.Background(), 42, CreateReviewRequest{BookingID: 1, Rating: 4})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Create_RatingBounds(t *testing.T) {
	svc := NewService(new(mockReviewRepo), new(mockBookingGate))

	_, err := svc.Create(context.Background(), 42, CreateReviewRequest{BookingID: 1, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Create(context.Background(), 42, CreateReviewRequest{BookingID: 1, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_ServiceRating(t *testing.T) {
	reviews := new(mockReviewRepo)
	reviews.On("AverageRating", mock.Anything, int64(3)).Return(4.5, int64(12), nil)

	svc := NewService(reviews, new(mockBookingGate))

	rating, err := svc.ServiceRating(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 4.5, rating.Average)
	assert.Equal(t, int64(12), rating.Count)
}
