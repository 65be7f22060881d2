package membership

import (
	"context"
	"errors"
	"fmt"

	"officebook/internal/domain"
	"officebook/internal/gateway"
	"officebook/internal/repository"
)

type Service struct {
	memberships membershipRepo
	gateway     paymentGateway
	loggerf     func(format string, args ...interface{})
}

func NewService(memberships membershipRepo, gw paymentGateway, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{memberships: memberships, gateway: gw, loggerf: loggerf}
}

// Purchase creates a pending acquisition for the requested weekday subset and
// registers the checkout preference. The acquisition turns bought only when
// the gateway confirms payment through the webhook resolver.
func (s *Service) Purchase(ctx context.Context, buyerEmail string, membershipID int64, req PurchaseRequest) (*PurchaseResponse, error) {
	m, err := s.memberships.GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	days := req.Weekdays()
	for _, d := range days {
		if !m.AllowsDay(d) {
			return nil, ErrInvalidAccessDays
		}
	}

	acq := &domain.MembershipAcquisition{
		MembershipID: m.ID,
		BuyerEmail:   buyerEmail,
		Status:       domain.AcquisitionPending,
		AccessDays:   days,
	}
	if err := s.memberships.CreateAcquisition(ctx, acq); err != nil {
		return nil, err
	}

	prefID, err := s.gateway.CreatePreference(ctx, gateway.PreferenceInfo{
		Title:             fmt.Sprintf("Membership %s", m.Name),
		Amount:            m.Price,
		PayerEmail:        buyerEmail,
		ExternalReference: fmt.Sprintf("membership-acquisition-%d", acq.ID),
	})
	if err != nil {
		s.loggerf("level=error msg=preference registration failed acquisition_id=%d err=%v", acq.ID, err)
		return nil, ErrPaymentGateway
	}
	s.loggerf("level=info msg=membership acquisition created acquisition_id=%d membership_id=%d preference_id=%s", acq.ID, m.ID, prefID)

	resp := &PurchaseResponse{
		AcquisitionID: acq.ID,
		MembershipID:  m.ID,
		Status:        string(acq.Status),
		AccessDays:    make([]int, 0, len(days)),
		Price:         m.Price,
		PreferenceID:  prefID,
	}
	for _, d := range days {
		resp.AccessDays = append(resp.AccessDays, int(d))
	}
	return resp, nil
}
