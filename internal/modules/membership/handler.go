package membership

import (
	"net/http"
	"strconv"

	"officebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/memberships/:id/acquisitions", h.Purchase)
}

func (h *Handler) Purchase(c *gin.Context) {
	membershipID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership ID")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "access_days must list weekdays 0-6")
		return
	}

	buyerEmail := c.GetString("email")
	if buyerEmail == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	resp, err := h.service.Purchase(c.Request.Context(), buyerEmail, membershipID, req)
	if err != nil {
		switch err {
		case ErrMembershipNotFound:
			response.Error(c, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", "Membership not found")
		case ErrInvalidAccessDays:
			response.Error(c, http.StatusBadRequest, "INVALID_ACCESS_DAYS", "Requested days are not covered by this membership")
		case ErrPaymentGateway:
			response.Error(c, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR", "Payment preference could not be registered")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to purchase membership")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"acquisition": resp})
}
