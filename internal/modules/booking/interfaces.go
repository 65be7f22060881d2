package booking

import (
	"context"
	"time"

	"officebook/internal/domain"
	"officebook/internal/gateway"
	"officebook/internal/repository"
)

// OfficeRepository defines the office lookups the booking flow needs
type OfficeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, officeID int64, start, end time.Time) (bool, error)
	FindByOfficeAndDate(ctx context.Context, officeID int64, date time.Time) ([]domain.Booking, error)
	FindByRenter(ctx context.Context, q repository.RenterBookingsQuery) ([]domain.Booking, error)
	CountByRenter(ctx context.Context, q repository.RenterBookingsQuery) (int64, error)
	ExistsByRenterAndOffice(ctx context.Context, renterEmail string, officeID int64) (bool, error)
}

// MembershipAcquisitionReader resolves acquisitions for the membership-backed
// creation strategy
type MembershipAcquisitionReader interface {
	GetAcquisitionByID(ctx context.Context, id int64) (*domain.MembershipAcquisition, error)
}

// PaymentGateway registers payment preferences for direct bookings
type PaymentGateway interface {
	CreatePreference(ctx context.Context, info gateway.PreferenceInfo) (string, error)
}

// EventPublisher is the fire-and-forget event sink
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
