package domain

import "time"

// TrainerAvailability is a weekly working-hours entry for one trainer.
// Times are "HH:MM" in 24h format, DayOfWeek follows time.Weekday
// (0 = Sunday).
type TrainerAvailability struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainer_id"`
	DayOfWeek int       `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
