package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"petcare/internal/domain"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	s.ID = 1
	return args.Error(0)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceRepo) List(ctx context.Context, category string) ([]domain.Service, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_List_FiltersByCategory(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("List", mock.Anything, "grooming").Return([]domain.Service{
		{ID: 1, Name: "Full groom", Category: domain.CategoryGrooming},
	}, nil)

	svc := NewService(repo, nil)

	services, err := svc.List(context.Background(), "grooming")
	assert.NoError(t, err)
	assert.Len(t, services, 1)

	_, err = svc.List(context.Background(), "haircuts")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestService_Create_Validation(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateServiceRequest{Name: "Bath", Price: 20, Duration: 30, Category: "spa"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Create(context.Background(), CreateServiceRequest{Name: " ", Price: 20, Duration: 30, Category: "grooming"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(context.Background(), CreateServiceRequest{Name: "Bath", Price: 20, Duration: 30, Category: "grooming"})
	assert.NoError(t, err)
	assert.Equal(t, 1, created.Capacity) // defaults to one animal per slot
}

func TestService_Update_PartialFields(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{
		ID: 1, Name: "Bath", Price: 20, Duration: 30, Capacity: 1, Category: domain.CategoryGrooming,
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, nil)

	price := 25.0
	updated, err := svc.Update(context.Background(), 1, UpdateServiceRequest{Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, 25.0, updated.Price)
	assert.Equal(t, "Bath", updated.Name)

	badDuration := 0
	_, err = svc.Update(context.Background(), 1, UpdateServiceRequest{Duration: &badDuration})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(mockServiceRepo)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, nil)

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
