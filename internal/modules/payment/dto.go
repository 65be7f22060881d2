package payment

// WebhookNotification is the gateway callback payload, field-for-field. The
// contract is external and not renegotiable.
type WebhookNotification struct {
	ID          int64       `json:"id"`
	LiveMode    bool        `json:"live_mode"`
	Type        string      `json:"type"`
	DateCreated string      `json:"date_created"`
	UserID      int64       `json:"user_id"`
	APIVersion  string      `json:"api_version"`
	Action      string      `json:"action"`
	Data        WebhookData `json:"data"`
}

// WebhookData nests the external payment id used to fetch authoritative
// payment state from the gateway.
type WebhookData struct {
	ID string `json:"id"`
}

const (
	ActionPaymentCreated = "payment.created"
	ActionPaymentUpdated = "payment.updated"
)

// Actionable reports whether the notification carries one of the two
// actions the resolver acts upon; everything else is acknowledged and
// ignored.
func (n WebhookNotification) Actionable() bool {
	return n.Action == ActionPaymentCreated || n.Action == ActionPaymentUpdated
}
