package notification

import (
	"context"
	"fmt"
)

// PaymentAcceptedInfo carries the display data for a "payment accepted"
// message: where the renter booked and what was settled.
type PaymentAcceptedInfo struct {
	OfficeName string
	BranchName string
	City       string
	Street     string
	Amount     float64
	Currency   string
}

// Service composes renter-facing payment messages and delivers them over
// email, plus a realtime push when the renter is connected.
type Service struct {
	email   EmailSender
	hub     *Hub
	loggerf func(format string, args ...interface{})
}

func NewService(email EmailSender, hub *Hub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{email: email, hub: hub, loggerf: loggerf}
}

func (s *Service) SendPaymentAccepted(ctx context.Context, to string, info PaymentAcceptedInfo) error {
	body := fmt.Sprintf(
		"Your payment of %.2f %s was accepted. Your reservation at %s (%s, %s, %s) is confirmed.",
		info.Amount, info.Currency, info.OfficeName, info.BranchName, info.City, info.Street,
	)
	if s.hub != nil {
		s.hub.SendToRenter(to, map[string]interface{}{
			"type":   "payment_accepted",
			"office": info.OfficeName,
			"amount": info.Amount,
		})
	}
	return s.deliver(ctx, EmailMessage{To: to, Subject: "Payment accepted", Body: body})
}

func (s *Service) SendPaymentFailed(ctx context.Context, to string, reason string) error {
	body := "Your payment could not be completed"
	if reason != "" {
		body += " (" + reason + ")"
	}
	body += ". Your reservation was not confirmed."
	if s.hub != nil {
		s.hub.SendToRenter(to, map[string]interface{}{
			"type":   "payment_failed",
			"reason": reason,
		})
	}
	return s.deliver(ctx, EmailMessage{To: to, Subject: "Payment failed", Body: body})
}

func (s *Service) deliver(ctx context.Context, msg EmailMessage) error {
	if s.email == nil {
		s.loggerf("level=info msg=email sender disabled, dropping message to=%s subject=%q", msg.To, msg.Subject)
		return nil
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.loggerf("level=error msg=email delivery failed to=%s err=%v", msg.To, err)
		return err
	}
	return nil
}
