package booking

import (
	"context"
	"errors"
	"fmt"

	"officebook/internal/domain"
	"officebook/internal/events"
	"officebook/internal/gateway"
	"officebook/internal/repository"
)

// bookingStrategy is the polymorphic creation path: pay-per-booking or
// membership-backed.
type bookingStrategy interface {
	Book(ctx context.Context, office *domain.Office, renterEmail string, sched ScheduleInfo) (*domain.Booking, error)
}

// directStrategy creates a pending booking priced at hours x office price
// and registers a payment preference with the gateway. The booking is
// confirmed later by the payment reconciliation resolver.
type directStrategy struct {
	svc *Service
}

func (d *directStrategy) Book(ctx context.Context, office *domain.Office, renterEmail string, sched ScheduleInfo) (*domain.Booking, error) {
	s := d.svc
	if err := s.validateSchedule(ctx, office, sched); err != nil {
		return nil, err
	}

	hours := sched.Hours()
	b := &domain.Booking{
		OfficeID:    office.ID,
		RenterEmail: renterEmail,
		StartTime:   sched.Start,
		EndTime:     sched.End,
		Hours:       hours,
		Price:       float64(hours) * office.Price,
		Status:      domain.BookingPending,
	}
	if err := s.createGuarded(ctx, b); err != nil {
		return nil, err
	}

	prefID, err := s.gateway.CreatePreference(ctx, gateway.PreferenceInfo{
		Title:             fmt.Sprintf("Booking of %s", office.Name),
		Amount:            b.Price,
		PayerEmail:        renterEmail,
		ExternalReference: fmt.Sprintf("booking-%d", b.ID),
	})
	if err != nil {
		s.loggerf("level=error msg=preference registration failed booking_id=%d err=%v", b.ID, err)
		return nil, ErrPaymentGateway
	}
	s.loggerf("level=info msg=booking created booking_id=%d office_id=%d preference_id=%s price=%.2f", b.ID, office.ID, prefID, b.Price)
	return b, nil
}

// membershipStrategy backs the booking with a bought acquisition: zero
// price, created directly scheduled, confirmation event published right
// away. It skips the pending/payment-reconciliation path entirely.
type membershipStrategy struct {
	svc           *Service
	acquisitionID int64
}

func (m *membershipStrategy) Book(ctx context.Context, office *domain.Office, renterEmail string, sched ScheduleInfo) (*domain.Booking, error) {
	s := m.svc
	if err := s.validateSchedule(ctx, office, sched); err != nil {
		return nil, err
	}

	acq, err := s.acquisitions.GetAcquisitionByID(ctx, m.acquisitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMembershipAcquisitionNotFound
		}
		return nil, err
	}
	if acq.BuyerEmail != renterEmail {
		return nil, ErrMembershipAcquisitionForbidden
	}
	if !acq.ActiveOn(sched.Start.Weekday()) {
		return nil, ErrMembershipAcquisitionNotActive
	}

	b := &domain.Booking{
		OfficeID:    office.ID,
		RenterEmail: renterEmail,
		StartTime:   sched.Start,
		EndTime:     sched.End,
		Hours:       sched.Hours(),
		Price:       0,
		Status:      domain.BookingScheduled,
	}
	if err := s.createGuarded(ctx, b); err != nil {
		return nil, err
	}

	if err := s.events.PublishJSON(events.EventBookingConfirmed, events.BookingConfirmedPayload{
		BookingID:     b.ID,
		OfficeID:      office.ID,
		BranchID:      office.BranchID,
		RenterEmail:   renterEmail,
		SettledAmount: 0,
		Date:          b.StartTime,
	}); err != nil {
		s.loggerf("level=error msg=failed to publish confirmation event booking_id=%d err=%v", b.ID, err)
	}
	s.loggerf("level=info msg=membership booking created booking_id=%d office_id=%d acquisition_id=%d", b.ID, office.ID, acq.ID)
	return b, nil
}
