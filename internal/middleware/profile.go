package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"petcare/internal/domain"
	"petcare/internal/pkg/response"
)

type userLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireCompleteProfile blocks booking endpoints for users who have not
// filled in address, tax id and birth date yet. Clients use the
// PROFILE_INCOMPLETE code to route the user to the completion flow.
func RequireCompleteProfile(users userLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		// Admins and trainers manage bookings without a customer profile.
		if c.GetString("role") != string(domain.RoleCustomer) {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not found")
			c.Abort()
			return
		}

		if !user.ProfileComplete() {
			response.Error(c, http.StatusForbidden, "PROFILE_INCOMPLETE", "Complete your profile before booking")
			c.Abort()
			return
		}

		c.Next()
	}
}
