package domain

import "time"

type ServiceCategory string

const (
	CategoryGrooming   ServiceCategory = "grooming"
	CategoryTraining   ServiceCategory = "training"
	CategoryDaycare    ServiceCategory = "daycare"
	CategoryVeterinary ServiceCategory = "veterinary"
)

type Service struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price" validate:"required,gte=0"`
	Duration    int             `json:"duration" validate:"required,gt=0"` // minutes
	Capacity    int             `json:"capacity"`
	Category    ServiceCategory `json:"category" validate:"required"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
