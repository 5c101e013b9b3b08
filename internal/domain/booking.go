package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id" validate:"required"`
	PetID       int64         `json:"pet_id" validate:"required"`
	ServiceID   int64         `json:"service_id" validate:"required"`
	TrainerID   *int64        `json:"trainer_id,omitempty"`
	StartTime   time.Time     `json:"start_time" validate:"required"`
	EndTime     time.Time     `json:"end_time" validate:"required"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Pet     *Pet     `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// CanTransitionTo enforces the booking lifecycle: pending may become
// confirmed or cancelled, confirmed may become completed or cancelled,
// completed and cancelled are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}
