package catalog

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"omitempty,gt=0"`
	Category    string  `json:"category" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	Category    *string  `json:"category,omitempty"`
}
