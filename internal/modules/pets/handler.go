package pets

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	petGroup := protected.Group("/pets")
	{
		petGroup.POST("", h.Create)
		petGroup.GET("", h.List)
		petGroup.GET("/:id", h.Get)
		petGroup.PUT("/:id", h.Update)
		petGroup.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pet, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and species are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create pet")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pet": pet})
}

func (h *Handler) List(c *gin.Context) {
	petsList, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pets": petsList})
}

func (h *Handler) Get(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	pet, err := h.service.Get(c.Request.Context(), petID, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.writeError(c, err, "Failed to get pet")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": pet})
}

func (h *Handler) Update(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pet, err := h.service.Update(c.Request.Context(), petID, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update pet")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": pet})
}

func (h *Handler) Delete(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), petID, c.GetInt64("user_id"), c.GetString("role")); err != nil {
		h.writeError(c, err, "Failed to delete pet")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Pet belongs to another user")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
