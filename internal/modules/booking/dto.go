package booking

import "time"

type CreateBookingRequest struct {
	PetID      int64     `json:"pet_id" binding:"required"`
	ServiceID  int64     `json:"service_id" binding:"required"`
	TrainerID  *int64    `json:"trainer_id"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	RecurWeeks int       `json:"recur_weeks"`
	Notes      string    `json:"notes"`
}

type AvailabilityResponse struct {
	ServiceID int64      `json:"service_id"`
	TrainerID *int64     `json:"trainer_id,omitempty"`
	Date      string     `json:"date"`
	Open      string     `json:"open"`
	Close     string     `json:"close"`
	Slots     []TimeSlot `json:"slots"`
}
