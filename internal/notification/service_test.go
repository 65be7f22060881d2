package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureSender struct {
	sent []EmailMessage
	err  error
}

func (c *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func TestSendPaymentAccepted_ComposesMessage(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, nil, nil)

	err := svc.SendPaymentAccepted(context.Background(), "renter@example.com", PaymentAcceptedInfo{
		OfficeName: "Focus Room",
		BranchName: "Downtown Hub",
		City:       "Almaty",
		Street:     "Abay Ave 44",
		Amount:     110,
		Currency:   "KZT",
	})

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "renter@example.com", sender.sent[0].To)
	assert.Equal(t, "Payment accepted", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "110.00 KZT")
	assert.Contains(t, sender.sent[0].Body, "Focus Room")
}

func TestSendPaymentFailed_IncludesReason(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, nil, nil)

	err := svc.SendPaymentFailed(context.Background(), "renter@example.com", "rejected")
	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "Payment failed", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "rejected")
}

// A missing email integration must not fail payment processing.
func TestDeliver_NilSenderDropsQuietly(t *testing.T) {
	svc := NewService(nil, nil, nil)
	err := svc.SendPaymentAccepted(context.Background(), "renter@example.com", PaymentAcceptedInfo{})
	assert.NoError(t, err)
}

func TestNewSendGridSender_DisabledWithoutKey(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{}))
	assert.NotNil(t, NewSendGridSender(SendGridConfig{APIKey: "sg-key", FromEmail: "no-reply@officebook.local"}))
}
