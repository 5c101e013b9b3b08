package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcare/internal/domain"
)

type mockUserLister struct {
	mock.Mock
}

func (m *mockUserLister) ListTrainers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockAvailabilityRepo struct {
	mock.Mock
}

func (m *mockAvailabilityRepo) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error) {
	args := m.Called(ctx, trainerID)
	return args.Get(0).([]domain.TrainerAvailability), args.Error(1)
}

func (m *mockAvailabilityRepo) Replace(ctx context.Context, trainerID int64, entries []domain.TrainerAvailability) error {
	args := m.Called(ctx, trainerID, entries)
	return args.Error(0)
}

func TestService_SetAvailability_Valid(t *testing.T) {
	avail := new(mockAvailabilityRepo)
	avail.On("Replace", mock.Anything, int64(5), mock.Anything).Return(nil)
	avail.On("ListByTrainer", mock.Anything, int64(5)).Return([]domain.TrainerAvailability{
		{TrainerID: 5, DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"},
	}, nil)

	svc := NewService(new(mockUserLister), avail)

	entries, err := svc.SetAvailability(context.Background(), 5, SetAvailabilityRequest{
		Entries: []AvailabilityEntry{{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"}},
	})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	avail.AssertExpectations(t)
}

func TestService_SetAvailability_Invalid(t *testing.T) {
	svc := NewService(new(mockUserLister), new(mockAvailabilityRepo))

	cases := []SetAvailabilityRequest{
		{Entries: []AvailabilityEntry{{DayOfWeek: 7, StartTime: "10:00", EndTime: "18:00"}}},
		{Entries: []AvailabilityEntry{{DayOfWeek: 1, StartTime: "25:00", EndTime: "18:00"}}},
		{Entries: []AvailabilityEntry{{DayOfWeek: 1, StartTime: "18:00", EndTime: "10:00"}}},
		{Entries: []AvailabilityEntry{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
		}},
	}

	for _, req := range cases {
		_, err := svc.SetAvailability(context.Background(), 5, req)
		assert.ErrorIs(t, err, ErrInvalidAvailability)
	}
}

func TestService_ListTrainers_StripsPasswordHash(t *testing.T) {
	users := new(mockUserLister)
	users.On("ListTrainers", mock.Anything).Return([]domain.User{
		{ID: 5, Name: "Joana", Role: domain.RoleTrainer, PasswordHash: "secret"},
	}, nil)

	svc := NewService(users, new(mockAvailabilityRepo))

	trainers, err := svc.ListTrainers(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, trainers[0].PasswordHash)
}
