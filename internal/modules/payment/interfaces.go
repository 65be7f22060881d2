package payment

import (
	"context"
	"time"

	"officebook/internal/domain"
	"officebook/internal/gateway"
	"officebook/internal/notification"
)

type gatewayClient interface {
	FetchPayment(ctx context.Context, externalID string) (*gateway.Payment, error)
}

type bookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SchedulePaidIdempotent(ctx context.Context, bookingID int64, p domain.PaymentRecord, settledAt time.Time) (bool, error)
}

type acquisitionRepo interface {
	GetAcquisitionByID(ctx context.Context, id int64) (*domain.MembershipAcquisition, error)
	GetMembershipByID(ctx context.Context, id int64) (*domain.Membership, error)
	MarkBoughtIdempotent(ctx context.Context, acquisitionID int64, p domain.PaymentRecord, settledAt time.Time) (bool, error)
}

type officeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

type branchReader interface {
	GetByID(ctx context.Context, id int64) (*domain.OfficeBranch, error)
}

type notificationSender interface {
	SendPaymentAccepted(ctx context.Context, to string, info notification.PaymentAcceptedInfo) error
	SendPaymentFailed(ctx context.Context, to string, reason string) error
}

type eventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
