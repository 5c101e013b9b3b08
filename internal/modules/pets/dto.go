package pets

type CreatePetRequest struct {
	Name         string  `json:"name" binding:"required"`
	Species      string  `json:"species" binding:"required"`
	Breed        string  `json:"breed"`
	Age          float64 `json:"age" binding:"omitempty,gte=0"`
	Weight       float64 `json:"weight" binding:"omitempty,gte=0"`
	MedicalInfo  string  `json:"medical_info"`
	SpecialNotes string  `json:"special_notes"`
}

type UpdatePetRequest struct {
	Name         *string  `json:"name,omitempty"`
	Species      *string  `json:"species,omitempty"`
	Breed        *string  `json:"breed,omitempty"`
	Age          *float64 `json:"age,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	MedicalInfo  *string  `json:"medical_info,omitempty"`
	SpecialNotes *string  `json:"special_notes,omitempty"`
}
