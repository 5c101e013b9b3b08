package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"petcare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/init", h.InitPayment)
	rg.GET("/bookings/:id/payment", h.GetBookingPayment)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/result", h.ResultCallback)
	rg.GET("/payments/success", h.SuccessCallback)
}

func (h *Handler) InitPayment(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.InitPayment(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotBookingOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another user")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking is not awaiting payment")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to init payment")
		}
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetBookingPayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	p, err := h.service.GetByBookingID(c.Request.Context(), bookingID, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotBookingOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another user")
		default:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

// ResultCallback acknowledges the gateway with the plain text the protocol
// requires, not the JSON envelope.
func (h *Handler) ResultCallback(c *gin.Context) {
	rawBody, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(rawBody)))
	_ = c.Request.ParseForm()

	outSum := c.PostForm("OutSum")
	invID, err := strconv.ParseInt(c.PostForm("InvId"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	signature := c.PostForm("SignatureValue")
	shp := collectShp(c)

	ack, err := h.service.HandleResultCallback(c.Request.Context(), outSum, invID, signature, shp, string(rawBody))
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrAmountMismatch) {
			c.String(http.StatusForbidden, "forbidden")
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.String(http.StatusOK, ack)
}

func (h *Handler) SuccessCallback(c *gin.Context) {
	outSum := c.Query("OutSum")
	invID, err := strconv.ParseInt(c.Query("InvId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid InvId")
		return
	}
	signature := c.Query("SignatureValue")
	shp := collectShp(c)

	ok, err := h.service.HandleSuccessCallback(c.Request.Context(), outSum, invID, signature, shp)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrAmountMismatch) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to handle callback")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"validated": ok})
}

func collectShp(c *gin.Context) map[string]string {
	res := map[string]string{}
	for k, v := range c.Request.Form {
		if strings.HasPrefix(strings.ToLower(k), "shp_") && len(v) > 0 {
			res[trimShpKey(k)] = v[0]
		}
	}
	for k, v := range c.Request.URL.Query() {
		if strings.HasPrefix(strings.ToLower(k), "shp_") && len(v) > 0 {
			res[trimShpKey(k)] = v[0]
		}
	}
	return res
}

func trimShpKey(k string) string {
	if len(k) < 4 {
		return k
	}
	return k[4:]
}
