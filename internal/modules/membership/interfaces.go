package membership

import (
	"context"

	"officebook/internal/domain"
	"officebook/internal/gateway"
)

type membershipRepo interface {
	GetMembershipByID(ctx context.Context, id int64) (*domain.Membership, error)
	CreateAcquisition(ctx context.Context, a *domain.MembershipAcquisition) error
}

type paymentGateway interface {
	CreatePreference(ctx context.Context, info gateway.PreferenceInfo) (string, error)
}
