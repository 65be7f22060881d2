package payment

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the gateway callback endpoints. They are unauthenticated
// by contract: the gateway signs nothing we verify here, and the resolver trusts
// only what it fetches back from the gateway itself.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook/bookings/:id", h.BookingWebhook)
	rg.POST("/payments/webhook/membership-acquisitions/:id", h.MembershipWebhook)
}

// BookingWebhook acknowledges every delivery with 200. A non-200 would make
// the gateway retry payloads we can never process, so malformed input is
// logged and dropped instead of rejected.
func (h *Handler) BookingWebhook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("level=warn msg=webhook with bad booking id id=%s err=%v", c.Param("id"), err)
		c.Status(http.StatusOK)
		return
	}

	var n WebhookNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		log.Printf("level=warn msg=webhook payload not parsed booking_id=%d err=%v", id, err)
		c.Status(http.StatusOK)
		return
	}

	h.service.HandleBookingNotification(c.Request.Context(), id, n)
	c.Status(http.StatusOK)
}

func (h *Handler) MembershipWebhook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("level=warn msg=webhook with bad acquisition id id=%s err=%v", c.Param("id"), err)
		c.Status(http.StatusOK)
		return
	}

	var n WebhookNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		log.Printf("level=warn msg=webhook payload not parsed acquisition_id=%d err=%v", id, err)
		c.Status(http.StatusOK)
		return
	}

	h.service.HandleMembershipNotification(c.Request.Context(), id, n)
	c.Status(http.StatusOK)
}
