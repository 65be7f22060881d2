package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Payment statuses reported by the gateway. Terminal failures and in-flight
// states are fixed by the external contract.
const (
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusCancelled   = "cancelled"
	StatusRefunded    = "refunded"
	StatusChargedBack = "charged_back"
	StatusPending     = "pending"
	StatusAuthorized  = "authorized"
	StatusInProcess   = "in_process"
	StatusInMediation = "in_mediation"
)

var (
	ErrMissingCredentials = errors.New("gateway credentials are not configured")
	ErrPaymentNotFound    = errors.New("payment not found at gateway")
)

// Payment is the authoritative payment object fetched from the gateway.
type Payment struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	TransactionAmount float64 `json:"transaction_amount"`
	NetReceivedAmount float64 `json:"net_received_amount"`
	CurrencyID        string  `json:"currency_id"`
	PaymentMethodID   string  `json:"payment_method_id"`
	PayerEmail        string  `json:"payer_email"`
}

// Fee is the gateway cut, derived from the gross and net amounts.
func (p *Payment) Fee() float64 {
	if p.NetReceivedAmount <= 0 || p.NetReceivedAmount > p.TransactionAmount {
		return 0
	}
	return p.TransactionAmount - p.NetReceivedAmount
}

// PreferenceInfo describes a payment preference to register before the
// renter is redirected to the gateway checkout.
type PreferenceInfo struct {
	Title             string  `json:"title"`
	Amount            float64 `json:"amount"`
	PayerEmail        string  `json:"payer_email"`
	ExternalReference string  `json:"external_reference"`
	NotificationURL   string  `json:"notification_url,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	loggerf func(format string, args ...interface{})
}

func NewClient(loggerf func(format string, args ...interface{})) *Client {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Client{
		baseURL: envOrDefault("PAYMENTS_BASE_URL", "https://api.mercadopago.com"),
		http:    &http.Client{Timeout: 15 * time.Second},
		loggerf: loggerf,
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// accessToken is read per call so a rotated token does not require a
// restart. An empty token is a credentials-initialization failure.
func (c *Client) accessToken() (string, error) {
	token := os.Getenv("PAYMENTS_ACCESS_TOKEN")
	if token == "" {
		return "", ErrMissingCredentials
	}
	return token, nil
}

type preferenceResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreatePreference(ctx context.Context, info PreferenceInfo) (string, error) {
	token, err := c.accessToken()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		c.loggerf("level=error msg=preference creation rejected status=%d body=%s", resp.StatusCode, string(raw))
		return "", fmt.Errorf("preference creation failed: status %d", resp.StatusCode)
	}

	var pref preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return "", err
	}
	return pref.ID, nil
}

func (c *Client) FetchPayment(ctx context.Context, externalID string) (*Payment, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+externalID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPaymentNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		c.loggerf("level=error msg=payment fetch rejected payment_id=%s status=%d body=%s", externalID, resp.StatusCode, string(raw))
		return nil, fmt.Errorf("payment fetch failed: status %d", resp.StatusCode)
	}

	var p Payment
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
