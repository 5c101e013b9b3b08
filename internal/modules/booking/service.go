package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"petcare/internal/domain"
	"petcare/internal/repository"
)

const maxRecurWeeks = 12

type Service struct {
	bookings     BookingRepository
	services     ServiceReader
	pets         PetReader
	users        UserReader
	availability AvailabilityReader
	notifs       NotificationSender
}

func NewService(
	bookings BookingRepository,
	services ServiceReader,
	pets PetReader,
	users UserReader,
	availability AvailabilityReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:     bookings,
		services:     services,
		pets:         pets,
		users:        users,
		availability: availability,
		notifs:       notifs,
	}
}

// CreateBooking validates the request, expands the weekly recurrence and
// persists every occurrence as a pending booking in one transaction.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) ([]*domain.Booking, error) {
	if req.RecurWeeks < 0 || req.RecurWeeks > maxRecurWeeks {
		return nil, ErrValidation
	}

	now := time.Now()
	if req.StartTime.Before(now) {
		return nil, ErrValidation
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, ErrValidation
	}
	if pet.OwnerID != userID {
		return nil, ErrPetNotOwned
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, ErrValidation
	}

	if req.TrainerID != nil {
		trainer, err := s.users.GetByID(ctx, *req.TrainerID)
		if err != nil || trainer.Role != domain.RoleTrainer {
			return nil, ErrTrainerNotFound
		}
	}

	duration := time.Duration(svc.Duration) * time.Minute
	starts := Occurrences(req.StartTime, req.RecurWeeks)

	// Advisory pre-check on every occurrence before writing anything.
	for _, start := range starts {
		ok, err := s.bookings.CheckAvailability(ctx, req.TrainerID, start, start.Add(duration))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotAvailable
		}
	}

	bookings := make([]*domain.Booking, 0, len(starts))
	for _, start := range starts {
		bookings = append(bookings, &domain.Booking{
			UserID:    userID,
			PetID:     req.PetID,
			ServiceID: req.ServiceID,
			TrainerID: req.TrainerID,
			StartTime: start,
			EndTime:   start.Add(duration),
			Status:    domain.BookingPending,
			Notes:     req.Notes,
		})
	}

	if err := s.bookings.CreateBatch(ctx, bookings); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overbooking" {
				return nil, ErrOverbooking
			}
		}
		return nil, err
	}

	if s.notifs != nil && req.TrainerID != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, *req.TrainerID, bookings[0].ID, bookings[0].StartTime)
	}

	return bookings, nil
}

// GetAvailability returns the free slots for a service on a date. The
// window comes from the trainer's weekly schedule when one is configured,
// otherwise the default business hours.
func (s *Service) GetAvailability(ctx context.Context, serviceID int64, trainerID *int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, ErrValidation
	}
	duration := time.Duration(svc.Duration) * time.Minute

	open, close := defaultWindow(day)
	if trainerID != nil {
		entries, err := s.availability.ListByTrainer(ctx, *trainerID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.DayOfWeek != int(day.Weekday()) {
				continue
			}
			o, c, perr := windowOnDay(day, e.StartTime, e.EndTime)
			if perr != nil {
				return nil, ErrValidation
			}
			open, close = o, c
			break
		}
	}

	if !close.After(open) {
		return &AvailabilityResponse{
			ServiceID: serviceID,
			TrainerID: trainerID,
			Date:      dateStr,
			Slots:     []TimeSlot{},
		}, nil
	}

	startOfDay := day
	endOfDay := day.Add(24 * time.Hour)
	busy, err := s.bookings.GetBusySlots(ctx, trainerID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	candidates := GenerateCandidates(open, close, slotStepMinutes*time.Minute, duration)
	slots := FilterAvailable(candidates, busy)

	return &AvailabilityResponse{
		ServiceID: serviceID,
		TrainerID: trainerID,
		Date:      dateStr,
		Open:      open.Format("15:04"),
		Close:     close.Format("15:04"),
		Slots:     slots,
	}, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]repository.BookingDetails, error) {
	return s.bookings.GetUserBookingsWithDetails(ctx, userID, limit, offset)
}

func (s *Service) GetTrainerSchedule(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error) {
	if to.Before(from) {
		return nil, ErrValidation
	}
	return s.bookings.GetTrainerSchedule(ctx, trainerID, from, to)
}

// CancelBooking cancels the booking on behalf of its customer, its trainer
// or an admin. Terminal statuses stay terminal.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole string, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !canActOnBooking(b, actorID, actorRole) {
		return nil, ErrForbidden
	}
	if !b.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, string(domain.BookingCancelled)); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.ID, reason)
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// CompleteBooking marks a confirmed booking done. Trainer or admin only.
func (s *Service) CompleteBooking(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Booking, error) {
	if actorRole != string(domain.RoleTrainer) && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if actorRole == string(domain.RoleTrainer) {
		if b.TrainerID == nil || *b.TrainerID != actorID {
			return nil, ErrForbidden
		}
	}
	if !b.CanTransitionTo(domain.BookingCompleted) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, string(domain.BookingCompleted)); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// ConfirmFromPayment flips a pending booking to confirmed once the payment
// gateway reports success. Called by the payment module.
func (s *Service) ConfirmFromPayment(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return ErrNotFound
	}
	if b.Status == domain.BookingConfirmed {
		return nil // idempotent
	}
	if !b.CanTransitionTo(domain.BookingConfirmed) {
		return ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, string(domain.BookingConfirmed)); err != nil {
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingConfirmed(ctx, b.UserID, b.ID)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func canActOnBooking(b *domain.Booking, actorID int64, actorRole string) bool {
	switch actorRole {
	case string(domain.RoleAdmin):
		return true
	case string(domain.RoleTrainer):
		return b.TrainerID != nil && *b.TrainerID == actorID
	default:
		return b.UserID == actorID
	}
}
