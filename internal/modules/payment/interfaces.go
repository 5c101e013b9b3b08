package payment

import (
	"context"
	"time"

	"petcare/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	MarkPaidIdempotent(ctx context.Context, invID int64, rawCallback string, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, invID int64, status domain.PaymentStatus, rawCallback, failureReason string) error
	UpdateStatusPendingIfNotPaid(ctx context.Context, invID int64) error
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// bookingConfirmer flips the booking to confirmed once the money arrived.
type bookingConfirmer interface {
	ConfirmFromPayment(ctx context.Context, bookingID int64) error
}

type serviceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
