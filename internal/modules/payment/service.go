package payment

import (
	"context"
	"time"

	"officebook/internal/domain"
	"officebook/internal/events"
	"officebook/internal/gateway"
	"officebook/internal/metrics"
	"officebook/internal/notification"
)

// Service is the payment reconciliation resolver. It turns at-least-once,
// possibly reordered gateway webhooks into exactly-once state transitions on
// pending bookings and membership acquisitions.
//
// Every failure in here is swallowed after logging: no renter is waiting on
// a webhook, and the gateway is the retry authority. The only idempotency
// guard is "mutate only while still pending", enforced under a row lock by
// the repositories.
type Service struct {
	gateway      gatewayClient
	bookings     bookingRepo
	acquisitions acquisitionRepo
	offices      officeReader
	branches     branchReader
	notifier     notificationSender
	events       eventPublisher
	loggerf      func(format string, args ...interface{})
}

func NewService(
	gw gatewayClient,
	bookings bookingRepo,
	acquisitions acquisitionRepo,
	offices officeReader,
	branches branchReader,
	notifier notificationSender,
	eventBus eventPublisher,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		gateway:      gw,
		bookings:     bookings,
		acquisitions: acquisitions,
		offices:      offices,
		branches:     branches,
		notifier:     notifier,
		events:       eventBus,
		loggerf:      loggerf,
	}
}

func isTerminalFailure(status string) bool {
	switch status {
	case gateway.StatusRejected, gateway.StatusCancelled, gateway.StatusRefunded, gateway.StatusChargedBack:
		return true
	}
	return false
}

func isInFlight(status string) bool {
	switch status {
	case gateway.StatusPending, gateway.StatusAuthorized, gateway.StatusInProcess, gateway.StatusInMediation:
		return true
	}
	return false
}

func settlementRecord(p *gateway.Payment) domain.PaymentRecord {
	return domain.PaymentRecord{
		ExternalID: p.ID,
		Amount:     p.TransactionAmount,
		Fee:        p.Fee(),
		Currency:   p.CurrencyID,
		Method:     p.PaymentMethodID,
	}
}

// HandleBookingNotification reconciles a webhook aimed at a booking.
func (s *Service) HandleBookingNotification(ctx context.Context, bookingID int64, n WebhookNotification) {
	if !n.Actionable() {
		s.loggerf("level=info msg=ignoring webhook action booking_id=%d action=%s", bookingID, n.Action)
		metrics.IncPaymentWebhook("booking", "ignored")
		return
	}

	pay, err := s.gateway.FetchPayment(ctx, n.Data.ID)
	if err != nil {
		s.loggerf("level=error msg=payment fetch failed booking_id=%d payment_id=%s err=%v", bookingID, n.Data.ID, err)
		metrics.IncPaymentWebhook("booking", "gateway_error")
		return
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		s.loggerf("level=error msg=booking not resolved booking_id=%d err=%v", bookingID, err)
		metrics.IncPaymentWebhook("booking", "target_missing")
		return
	}

	// Re-delivered webhooks land here once the booking left pending.
	if b.Status != domain.BookingPending {
		s.loggerf("level=info msg=booking already settled, skipping booking_id=%d status=%s", bookingID, b.Status)
		metrics.IncPaymentWebhook("booking", "noop")
		return
	}

	switch {
	case isTerminalFailure(pay.Status):
		s.loggerf("level=info msg=payment failed booking_id=%d payment_status=%s", bookingID, pay.Status)
		if err := s.notifier.SendPaymentFailed(ctx, b.RenterEmail, pay.Status); err != nil {
			s.loggerf("level=error msg=failed-payment notification not sent booking_id=%d err=%v", bookingID, err)
		}
		metrics.IncPaymentWebhook("booking", "payment_failed")

	case isInFlight(pay.Status):
		// Another webhook is expected later.
		metrics.IncPaymentWebhook("booking", "in_flight")

	case pay.Status == gateway.StatusApproved:
		changed, err := s.bookings.SchedulePaidIdempotent(ctx, bookingID, settlementRecord(pay), time.Now().UTC())
		if err != nil {
			// Left for manual reconciliation; the gateway will not
			// re-deliver indefinitely.
			s.loggerf("level=error msg=booking confirmation not persisted booking_id=%d err=%v", bookingID, err)
			metrics.IncPaymentWebhook("booking", "persist_error")
			return
		}
		if !changed {
			metrics.IncPaymentWebhook("booking", "noop")
			return
		}
		s.confirmBooking(ctx, b, pay)
		metrics.IncPaymentWebhook("booking", "applied")

	default:
		s.loggerf("level=info msg=unknown payment status booking_id=%d payment_status=%s", bookingID, pay.Status)
		metrics.IncPaymentWebhook("booking", "ignored")
	}
}

// confirmBooking publishes the confirmation event and sends the accepted
// notification with office/branch display data. Display lookups are best
// effort: a missing branch must not block the confirmation.
func (s *Service) confirmBooking(ctx context.Context, b *domain.Booking, pay *gateway.Payment) {
	var branchID int64
	info := notification.PaymentAcceptedInfo{
		Amount:   pay.TransactionAmount,
		Currency: pay.CurrencyID,
	}

	office, err := s.offices.GetByID(ctx, b.OfficeID)
	if err != nil {
		s.loggerf("level=error msg=office lookup failed for confirmation booking_id=%d err=%v", b.ID, err)
	} else {
		branchID = office.BranchID
		info.OfficeName = office.Name
		if branch, err := s.branches.GetByID(ctx, office.BranchID); err != nil {
			s.loggerf("level=error msg=branch lookup failed for confirmation booking_id=%d err=%v", b.ID, err)
		} else {
			info.BranchName = branch.Name
			info.City = branch.City
			info.Street = branch.Street
		}
	}

	if err := s.events.PublishJSON(events.EventBookingConfirmed, events.BookingConfirmedPayload{
		BookingID:     b.ID,
		OfficeID:      b.OfficeID,
		BranchID:      branchID,
		RenterEmail:   b.RenterEmail,
		SettledAmount: pay.TransactionAmount,
		Date:          b.StartTime,
	}); err != nil {
		s.loggerf("level=error msg=confirmation event not published booking_id=%d err=%v", b.ID, err)
	}

	if err := s.notifier.SendPaymentAccepted(ctx, b.RenterEmail, info); err != nil {
		s.loggerf("level=error msg=accepted-payment notification not sent booking_id=%d err=%v", b.ID, err)
	}
}

// HandleMembershipNotification reconciles a webhook aimed at a membership
// acquisition; parallel branch of HandleBookingNotification.
func (s *Service) HandleMembershipNotification(ctx context.Context, acquisitionID int64, n WebhookNotification) {
	if !n.Actionable() {
		s.loggerf("level=info msg=ignoring webhook action acquisition_id=%d action=%s", acquisitionID, n.Action)
		metrics.IncPaymentWebhook("membership", "ignored")
		return
	}

	pay, err := s.gateway.FetchPayment(ctx, n.Data.ID)
	if err != nil {
		s.loggerf("level=error msg=payment fetch failed acquisition_id=%d payment_id=%s err=%v", acquisitionID, n.Data.ID, err)
		metrics.IncPaymentWebhook("membership", "gateway_error")
		return
	}

	acq, err := s.acquisitions.GetAcquisitionByID(ctx, acquisitionID)
	if err != nil {
		s.loggerf("level=error msg=acquisition not resolved acquisition_id=%d err=%v", acquisitionID, err)
		metrics.IncPaymentWebhook("membership", "target_missing")
		return
	}

	if acq.Status != domain.AcquisitionPending {
		s.loggerf("level=info msg=acquisition already settled, skipping acquisition_id=%d status=%s", acquisitionID, acq.Status)
		metrics.IncPaymentWebhook("membership", "noop")
		return
	}

	switch {
	case isTerminalFailure(pay.Status):
		s.loggerf("level=info msg=payment failed acquisition_id=%d payment_status=%s", acquisitionID, pay.Status)
		if err := s.notifier.SendPaymentFailed(ctx, acq.BuyerEmail, pay.Status); err != nil {
			s.loggerf("level=error msg=failed-payment notification not sent acquisition_id=%d err=%v", acquisitionID, err)
		}
		metrics.IncPaymentWebhook("membership", "payment_failed")

	case isInFlight(pay.Status):
		metrics.IncPaymentWebhook("membership", "in_flight")

	case pay.Status == gateway.StatusApproved:
		changed, err := s.acquisitions.MarkBoughtIdempotent(ctx, acquisitionID, settlementRecord(pay), time.Now().UTC())
		if err != nil {
			s.loggerf("level=error msg=acquisition activation not persisted acquisition_id=%d err=%v", acquisitionID, err)
			metrics.IncPaymentWebhook("membership", "persist_error")
			return
		}
		if !changed {
			metrics.IncPaymentWebhook("membership", "noop")
			return
		}
		s.confirmAcquisition(ctx, acq, pay)
		metrics.IncPaymentWebhook("membership", "applied")

	default:
		s.loggerf("level=info msg=unknown payment status acquisition_id=%d payment_status=%s", acquisitionID, pay.Status)
		metrics.IncPaymentWebhook("membership", "ignored")
	}
}

func (s *Service) confirmAcquisition(ctx context.Context, acq *domain.MembershipAcquisition, pay *gateway.Payment) {
	info := notification.PaymentAcceptedInfo{
		Amount:   pay.TransactionAmount,
		Currency: pay.CurrencyID,
	}

	if membership, err := s.acquisitions.GetMembershipByID(ctx, acq.MembershipID); err != nil {
		s.loggerf("level=error msg=membership lookup failed for confirmation acquisition_id=%d err=%v", acq.ID, err)
	} else {
		info.OfficeName = membership.Name
		if branch, err := s.branches.GetByID(ctx, membership.BranchID); err != nil {
			s.loggerf("level=error msg=branch lookup failed for confirmation acquisition_id=%d err=%v", acq.ID, err)
		} else {
			info.BranchName = branch.Name
			info.City = branch.City
			info.Street = branch.Street
		}
	}

	if err := s.events.PublishJSON(events.EventMembershipActivated, events.MembershipActivatedPayload{
		AcquisitionID: acq.ID,
		MembershipID:  acq.MembershipID,
		BuyerEmail:    acq.BuyerEmail,
		SettledAmount: pay.TransactionAmount,
	}); err != nil {
		s.loggerf("level=error msg=activation event not published acquisition_id=%d err=%v", acq.ID, err)
	}

	if err := s.notifier.SendPaymentAccepted(ctx, acq.BuyerEmail, info); err != nil {
		s.loggerf("level=error msg=accepted-payment notification not sent acquisition_id=%d err=%v", acq.ID, err)
	}
}
