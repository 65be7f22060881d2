package payment

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"officebook/internal/domain"
	"officebook/internal/gateway"
)

func newWebhookRouter() (*gin.Engine, resolverMocks) {
	gin.SetMode(gin.TestMode)
	svc, m := newResolver()
	h := NewHandler(svc)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, m
}

const webhookBody = `{
	"id": 1001,
	"live_mode": false,
	"type": "payment",
	"action": "payment.updated",
	"data": {"id": "pay-9"}
}`

func TestBookingWebhook_AlwaysAcknowledges(t *testing.T) {
	r, m := newWebhookRouter()

	m.gw.On("FetchPayment", mock.Anything, "pay-9").Return(&gateway.Payment{
		ID: "pay-9", Status: gateway.StatusInProcess,
	}, nil)
	m.bookings.On("GetByID", mock.Anything, int64(77)).Return(&domain.Booking{
		ID: 77, Status: domain.BookingPending, RenterEmail: "renter@example.com",
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments/webhook/bookings/77", strings.NewReader(webhookBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingWebhook_MalformedPayloadStill200(t *testing.T) {
	r, m := newWebhookRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments/webhook/bookings/77", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.gw.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
}

func TestBookingWebhook_BadIDStill200(t *testing.T) {
	r, m := newWebhookRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments/webhook/bookings/not-a-number", strings.NewReader(webhookBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.gw.AssertNotCalled(t, "FetchPayment", mock.Anything, mock.Anything)
}

func TestMembershipWebhook_AlwaysAcknowledges(t *testing.T) {
	r, m := newWebhookRouter()

	m.gw.On("FetchPayment", mock.Anything, "pay-9").Return(&gateway.Payment{
		ID: "pay-9", Status: gateway.StatusPending,
	}, nil)
	m.acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(&domain.MembershipAcquisition{
		ID: 5, Status: domain.AcquisitionPending, BuyerEmail: "renter@example.com",
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments/webhook/membership-acquisitions/5", strings.NewReader(webhookBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
