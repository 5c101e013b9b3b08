package admin

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ListUsersQuery struct {
	Role  string `form:"role"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type ListBookingsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
