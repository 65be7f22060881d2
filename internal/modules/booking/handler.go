package booking

import (
	"net/http"
	"strconv"
	"time"

	"officebook/internal/metrics"
	"officebook/internal/pkg/response"
	"officebook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.MyBookings)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/offices/:id/slots", h.OccupiedSlots)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	renterEmail := c.GetString("email")
	if renterEmail == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), renterEmail, req)
	if err != nil {
		switch err {
		case ErrInvalidScheduleTime:
			response.Error(c, http.StatusBadRequest, "INVALID_SCHEDULE_TIME", "Booking times must be hour-aligned and end after start")
		case ErrOfficeNotFound:
			response.Error(c, http.StatusNotFound, "OFFICE_NOT_FOUND", "Office not found")
		case ErrOfficeIsDeleted:
			response.Error(c, http.StatusConflict, "OFFICE_IS_DELETED", "Office is no longer bookable")
		case ErrOfficeNotAvailable:
			response.Error(c, http.StatusConflict, "OFFICE_IS_NOT_AVAILABLE", "Office is not available for the selected time")
		case ErrMembershipAcquisitionNotFound:
			response.Error(c, http.StatusNotFound, "MEMBERSHIP_ACQUISITION_NOT_FOUND", "Membership acquisition not found")
		case ErrMembershipAcquisitionForbidden:
			response.Error(c, http.StatusForbidden, "MEMBERSHIP_ACQUISITION_FORBIDDEN", "Membership acquisition belongs to another renter")
		case ErrMembershipAcquisitionNotActive:
			response.Error(c, http.StatusConflict, "MEMBERSHIP_ACQUISITION_IS_NOT_ACTIVE", "Membership acquisition is not active for the requested day")
		case ErrPaymentGateway:
			response.Error(c, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR", "Payment preference could not be registered")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	metrics.IncBookingCreated(string(b.Status))
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) OccupiedSlots(c *gin.Context) {
	officeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid office ID")
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.service.FindOccupiedSlots(c.Request.Context(), officeID, date)
	if err != nil {
		if err == ErrOfficeNotFound {
			response.Error(c, http.StatusNotFound, "OFFICE_NOT_FOUND", "Office not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load occupied slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) MyBookings(c *gin.Context) {
	renterEmail := c.GetString("email")
	if renterEmail == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	q := repository.RenterBookingsQuery{
		RenterEmail: renterEmail,
		OnlyCurrent: c.Query("only_current") == "true",
		Offset:      parseIntDefault(c.Query("offset"), 0),
		Limit:       parseIntDefault(c.Query("limit"), 20),
	}
	if ds := c.Query("date"); ds != "" {
		d, err := time.Parse("2006-01-02", ds)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		q.Date = &d
	}

	rows, total, err := h.service.GetMyBookings(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows, "total": total})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
