package pets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"petcare/internal/domain"
)

type mockPetRepo struct {
	mock.Mock
}

func (m *mockPetRepo) Create(ctx context.Context, p *domain.Pet) error {
	args := m.Called(ctx, p)
	p.ID = 1
	return args.Error(0)
}

func (m *mockPetRepo) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

func (m *mockPetRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Pet), args.Error(1)
}

func (m *mockPetRepo) Update(ctx context.Context, p *domain.Pet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPetRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	repo := new(mockPetRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	pet, err := svc.Create(context.Background(), 42, CreatePetRequest{
		Name:    "Rex",
		Species: "dog",
		Breed:   "labrador",
		Age:     3,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), pet.OwnerID)
	assert.Equal(t, "Rex", pet.Name)
	repo.AssertExpectations(t)
}

func TestService_Create_RequiresNameAndSpecies(t *testing.T) {
	svc := NewService(new(mockPetRepo))

	_, err := svc.Create(context.Background(), 42, CreatePetRequest{Name: "  ", Species: "dog"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 42, CreatePetRequest{Name: "Rex"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := new(mockPetRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 42, Name: "Rex", Species: "dog"}, nil)

	svc := NewService(repo)

	newName := "Max"
	_, err := svc.Update(context.Background(), 1, 99, "customer", UpdatePetRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update")
}

func TestService_Update_AdminBypassesOwnership(t *testing.T) {
	repo := new(mockPetRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 42, Name: "Rex", Species: "dog"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)

	notes := "afraid of thunderstorms"
	pet, err := svc.Update(context.Background(), 1, 7, "admin", UpdatePetRequest{SpecialNotes: &notes})

	assert.NoError(t, err)
	assert.Equal(t, notes, pet.SpecialNotes)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(mockPetRepo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 5, 42, "customer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	repo := new(mockPetRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 42}, nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := NewService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 99, "customer"), ErrNotOwner)
	assert.NoError(t, svc.Delete(context.Background(), 1, 42, "customer"))
}
