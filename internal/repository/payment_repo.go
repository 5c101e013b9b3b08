package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).Where("inv_id = ?", invID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// MarkPaidIdempotent flips the payment to paid once. Returns false when it
// was already paid, so repeated gateway callbacks are harmless.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, invID int64, rawCallback string, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("inv_id = ? AND status <> ?", invID, domain.PaymentStatusPaid).
		Updates(map[string]any{
			"status":       domain.PaymentStatusPaid,
			"raw_callback": rawCallback,
			"paid_at":      paidAt,
			"updated_at":   paidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, invID int64, status domain.PaymentStatus, rawCallback, failureReason string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("inv_id = ?", invID).
		Updates(map[string]any{
			"status":         status,
			"raw_callback":   rawCallback,
			"failure_reason": failureReason,
			"updated_at":     time.Now(),
		}).Error
}

// UpdateStatusPendingIfNotPaid sets pending from a success redirect without
// clobbering a paid state already written by the result callback.
func (r *PaymentRepository) UpdateStatusPendingIfNotPaid(ctx context.Context, invID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("inv_id = ? AND status <> ?", invID, domain.PaymentStatusPaid).
		Updates(map[string]any{
			"status":     domain.PaymentStatusPending,
			"updated_at": time.Now(),
		}).Error
}
