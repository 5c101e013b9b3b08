package trainer

import (
	"context"
	"errors"
	"regexp"

	"petcare/internal/domain"
)

var (
	ErrInvalidAvailability = errors.New("invalid availability entry")
)

var timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type UserLister interface {
	ListTrainers(ctx context.Context) ([]domain.User, error)
}

type AvailabilityRepository interface {
	ListByTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error)
	Replace(ctx context.Context, trainerID int64, entries []domain.TrainerAvailability) error
}

type AvailabilityEntry struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" binding:"required"`
}

// Service exposes the trainer directory and lets trainers manage their
// weekly working hours.
type Service struct {
	users        UserLister
	availability AvailabilityRepository
}

func NewService(users UserLister, availability AvailabilityRepository) *Service {
	return &Service{users: users, availability: availability}
}

func (s *Service) ListTrainers(ctx context.Context) ([]domain.User, error) {
	trainers, err := s.users.ListTrainers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trainers {
		trainers[i].PasswordHash = ""
	}
	return trainers, nil
}

func (s *Service) GetAvailability(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error) {
	return s.availability.ListByTrainer(ctx, trainerID)
}

// SetAvailability replaces the whole weekly schedule. At most one entry per
// weekday, start strictly before end.
func (s *Service) SetAvailability(ctx context.Context, trainerID int64, req SetAvailabilityRequest) ([]domain.TrainerAvailability, error) {
	seen := map[int]bool{}
	entries := make([]domain.TrainerAvailability, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 || seen[e.DayOfWeek] {
			return nil, ErrInvalidAvailability
		}
		if !timeRegex.MatchString(e.StartTime) || !timeRegex.MatchString(e.EndTime) || e.StartTime >= e.EndTime {
			return nil, ErrInvalidAvailability
		}
		seen[e.DayOfWeek] = true
		entries = append(entries, domain.TrainerAvailability{
			TrainerID: trainerID,
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}

	if err := s.availability.Replace(ctx, trainerID, entries); err != nil {
		return nil, err
	}
	return s.availability.ListByTrainer(ctx, trainerID)
}
