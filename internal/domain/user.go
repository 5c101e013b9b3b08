package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleTrainer  UserRole = "trainer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email" validate:"required,email"`
	PasswordHash        string     `json:"-"`
	Role                UserRole   `json:"role"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone,omitempty"`
	Address             string     `json:"address,omitempty"`
	NIF                 string     `json:"nif,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	EmailVerified       bool       `json:"email_verified"`
	EmailVerifiedAt     *time.Time `json:"-"`
	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ProfileComplete reports whether the user filled in the fields required
// before booking: address, tax id and birth date.
func (u *User) ProfileComplete() bool {
	return u.Address != "" && u.NIF != "" && u.BirthDate != nil
}
