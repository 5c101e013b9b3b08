package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"petcare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes lists trainers and their working hours for booking.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/trainers", h.ListTrainers)
	v1.GET("/trainers/:id/availability", h.GetTrainerAvailability)
}

// RegisterTrainerRoutes is mounted behind trainer-only auth.
func (h *Handler) RegisterTrainerRoutes(trainerGroup *gin.RouterGroup) {
	trainerGroup.GET("/availability", h.GetOwnAvailability)
	trainerGroup.PUT("/availability", h.SetAvailability)
}

func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.service.ListTrainers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list trainers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"trainers": trainers})
}

func (h *Handler) GetTrainerAvailability(c *gin.Context) {
	trainerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || trainerID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	entries, err := h.service.GetAvailability(c.Request.Context(), trainerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": entries})
}

func (h *Handler) GetOwnAvailability(c *gin.Context) {
	entries, err := h.service.GetAvailability(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": entries})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entries, err := h.service.SetAvailability(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidAvailability) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Entries must be unique per weekday with HH:MM times and start before end")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to set availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": entries})
}
