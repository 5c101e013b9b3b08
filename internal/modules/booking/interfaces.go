package booking

import (
	"context"
	"time"

	"petcare/internal/domain"
	"petcare/internal/repository"
)

// BookingRepository defines the storage operations the booking service uses
type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, trainerID *int64, start, end time.Time) (bool, error)
	GetBusySlots(ctx context.Context, trainerID *int64, from, to time.Time) ([]repository.BusySlot, error)
	GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]repository.BookingDetails, error)
	GetTrainerSchedule(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status string) error
}

// ServiceReader resolves the booked service's duration and price
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PetReader is used for the ownership check on booking submission
type PetReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// UserReader resolves the requested trainer to a user record
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AvailabilityReader supplies a trainer's weekly working hours
type AvailabilityReader interface {
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error)
}

// NotificationSender fans booking lifecycle events out to users
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID int64, bookingID int64, start time.Time) error
	NotifyBookingConfirmed(ctx context.Context, userID int64, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID int64, bookingID int64, reason string) error
}
