package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID            int64         `json:"id"`
	BookingID     int64         `json:"booking_id"`
	Amount        string        `json:"amount"` // decimal string, e.g. "45.00"
	Currency      string        `json:"currency"`
	InvID         int64         `json:"inv_id" gorm:"column:inv_id;uniqueIndex"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Signature     string        `json:"-"`
	PaymentURL    string        `json:"payment_url,omitempty"`
	Metadata      string        `json:"-" gorm:"type:text"`
	RawCallback   string        `json:"-" gorm:"type:text"`
	FailureReason string        `json:"-"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
