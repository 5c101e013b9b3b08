package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"petcare/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, role string, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, role, limit, offset)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func TestService_ListUsers_StripsPasswordHash(t *testing.T) {
	users := new(mockUserRepo)
	users.On("List", mock.Anything, "", 20, 0).Return([]domain.User{
		{ID: 1, Email: "a@example.com", PasswordHash: "secret"},
	}, int64(1), nil)

	svc := NewService(users, new(mockBookingRepo))

	result, total, err := svc.ListUsers(context.Background(), "", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, result[0].PasswordHash)
}

func TestService_UpdateUserRole(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleCustomer}, nil)
	users.On("UpdateRole", mock.Anything, int64(2), "trainer").Return(nil)

	svc := NewService(users, new(mockBookingRepo))

	_, err := svc.UpdateUserRole(context.Background(), 2, 1, "trainer")
	assert.NoError(t, err)

	_, err = svc.UpdateUserRole(context.Background(), 2, 1, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	// admins cannot change their own role
	_, err = svc.UpdateUserRole(context.Background(), 1, 1, "customer")
	assert.ErrorIs(t, err, ErrSelfDemotion)
}

func TestService_UpdateUserRole_UserNotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, new(mockBookingRepo))

	_, err := svc.UpdateUserRole(context.Background(), 99, 1, "trainer")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_DeleteUser_SelfGuard(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockBookingRepo))

	err := svc.DeleteUser(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSelfDemotion)
	users.AssertNotCalled(t, "Delete")
}

func TestService_ListBookings_Pagination(t *testing.T) {
	bookings := new(mockBookingRepo)
	bookings.On("ListAll", mock.Anything, "pending", 20, 40).Return([]domain.Booking{}, int64(0), nil)

	svc := NewService(new(mockUserRepo), bookings)

	_, _, err := svc.ListBookings(context.Background(), "pending", 3, 0)
	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}
