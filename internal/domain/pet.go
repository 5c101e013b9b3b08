package domain

import "time"

type Pet struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Name         string    `json:"name" validate:"required"`
	Species      string    `json:"species" validate:"required"`
	Breed        string    `json:"breed,omitempty"`
	Age          float64   `json:"age,omitempty"`
	Weight       float64   `json:"weight,omitempty"`
	MedicalInfo  string    `json:"medical_info,omitempty"`
	SpecialNotes string    `json:"special_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
