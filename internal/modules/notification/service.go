package notification

import (
	"context"
	"fmt"
	"time"

	"petcare/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification, data map[string]any) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// pusher is what the service needs from the websocket hub.
type pusher interface {
	SendToUser(userID int64, message interface{}) bool
}

// Service stores notifications and pushes them to connected clients.
// Delivery over the socket is best effort; the database copy is the record.
type Service struct {
	notifications NotificationRepository
	hub           pusher
}

func NewService(notifications NotificationRepository, hub pusher) *Service {
	return &Service{notifications: notifications, hub: hub}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, start time.Time) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingCreated,
		Title:   "New booking",
		Message: fmt.Sprintf("A new booking was placed for %s", start.Format("Mon, 2 Jan 15:04")),
	}, map[string]any{"booking_id": bookingID})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingConfirmed,
		Title:   "Booking confirmed",
		Message: "Your payment was received and the booking is confirmed",
	}, map[string]any{"booking_id": bookingID})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error {
	msg := "Your booking was cancelled"
	if reason != "" {
		msg = fmt.Sprintf("Your booking was cancelled: %s", reason)
	}
	return s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingCancelled,
		Title:   "Booking cancelled",
		Message: msg,
	}, map[string]any{"booking_id": bookingID})
}

func (s *Service) NotifyBookingReminder(ctx context.Context, userID, bookingID int64, start time.Time) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingReminder,
		Title:   "Upcoming booking",
		Message: fmt.Sprintf("Your booking starts at %s", start.Format("15:04")),
	}, map[string]any{"booking_id": bookingID})
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.notifications.GetByUserID(ctx, userID, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.notifications.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *Service) deliver(ctx context.Context, n *domain.Notification, data map[string]any) error {
	if err := s.notifications.Create(ctx, n, data); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.SendToUser(n.UserID, n)
	}
	return nil
}
