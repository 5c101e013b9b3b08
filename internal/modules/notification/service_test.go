package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcare/internal/domain"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification, data map[string]any) error {
	args := m.Called(ctx, n, data)
	n.ID = 1
	return args.Error(0)
}

func (m *mockNotificationRepo) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type recordingPusher struct {
	sent []int64
}

func (p *recordingPusher) SendToUser(userID int64, message interface{}) bool {
	p.sent = append(p.sent, userID)
	return true
}

func TestService_NotifyBookingConfirmed_StoresAndPushes(t *testing.T) {
	repo := new(mockNotificationRepo)
	hub := &recordingPusher{}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifBookingConfirmed && n.UserID == 42
	}), map[string]any{"booking_id": int64(7)}).Return(nil)

	svc := NewService(repo, hub)

	err := svc.NotifyBookingConfirmed(context.Background(), 42, 7)
	assert.NoError(t, err)
	assert.Equal(t, []int64{42}, hub.sent)
	repo.AssertExpectations(t)
}

func TestService_NotifyBookingCancelled_IncludesReason(t *testing.T) {
	repo := new(mockNotificationRepo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifBookingCancelled && n.Message == "Your booking was cancelled: trainer unavailable"
	}), mock.Anything).Return(nil)

	svc := NewService(repo, nil) // no hub connected

	err := svc.NotifyBookingCancelled(context.Background(), 42, 7, "trainer unavailable")
	assert.NoError(t, err)
}

func TestService_NotifyBookingReminder(t *testing.T) {
	repo := new(mockNotificationRepo)
	hub := &recordingPusher{}

	start := time.Date(2030, time.June, 2, 10, 30, 0, 0, time.UTC)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifBookingReminder && n.Message == "Your booking starts at 10:30"
	}), mock.Anything).Return(nil)

	svc := NewService(repo, hub)

	assert.NoError(t, svc.NotifyBookingReminder(context.Background(), 42, 7, start))
}

func TestHub_ReplacesExistingConnection(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(42))
	assert.False(t, hub.SendToUser(42, "hello"))
}
