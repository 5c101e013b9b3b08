package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	NIF       string `json:"nif,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD
}

type VerifyRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyConfirmDTO struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type UserResponse struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone,omitempty"`
	Role             string  `json:"role"`
	Address          string  `json:"address,omitempty"`
	NIF              string  `json:"nif,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	EmailVerified    bool    `json:"email_verified"`
	ProfileCompleted bool    `json:"profile_completed"`
}
