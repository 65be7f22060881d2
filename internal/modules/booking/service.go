package booking

import (
	"context"
	"errors"
	"time"

	"officebook/internal/domain"
	"officebook/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Service struct {
	offices      OfficeRepository
	bookings     BookingRepository
	acquisitions MembershipAcquisitionReader
	gateway      PaymentGateway
	events       EventPublisher
	loggerf      func(format string, args ...interface{})
}

func NewService(
	offices OfficeRepository,
	bookings BookingRepository,
	acquisitions MembershipAcquisitionReader,
	gateway PaymentGateway,
	events EventPublisher,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		offices:      offices,
		bookings:     bookings,
		acquisitions: acquisitions,
		gateway:      gateway,
		events:       events,
		loggerf:      loggerf,
	}
}

// CreateBooking validates the request and creates the reservation through
// the strategy selected by the presence of a membership-acquisition id.
func (s *Service) CreateBooking(ctx context.Context, renterEmail string, req CreateBookingRequest) (*domain.Booking, error) {
	office, err := s.offices.GetByID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}

	sched := ScheduleInfo{Start: req.StartTime, End: req.EndTime}

	var strategy bookingStrategy
	if req.MembershipAcquisitionID != nil {
		strategy = &membershipStrategy{svc: s, acquisitionID: *req.MembershipAcquisitionID}
	} else {
		strategy = &directStrategy{svc: s}
	}
	return strategy.Book(ctx, office, renterEmail, sched)
}

// validateSchedule runs the checks shared by both creation strategies, in
// order: hour alignment, soft deletion, overlap.
func (s *Service) validateSchedule(ctx context.Context, office *domain.Office, sched ScheduleInfo) error {
	if !domain.HourAligned(sched.Start, sched.End) {
		return ErrInvalidScheduleTime
	}
	if office.IsDeletedAt(time.Now()) {
		return ErrOfficeIsDeleted
	}
	ok, err := s.bookings.CheckAvailability(ctx, office.ID, sched.Start, sched.End)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOfficeNotAvailable
	}
	return nil
}

// createGuarded persists a booking, translating an overlap-constraint
// violation into ErrOfficeNotAvailable. Two concurrent requests can both
// pass CheckAvailability; the bookings_no_overlap constraint is what
// actually serializes them.
func (s *Service) createGuarded(ctx context.Context, b *domain.Booking) error {
	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if (pgErr.Code == "23505" || pgErr.Code == "23P01") && pgErr.ConstraintName == "bookings_no_overlap" {
				return ErrOfficeNotAvailable
			}
		}
		return err
	}
	return nil
}

// FindOccupiedSlots lists the time ranges held by pending and scheduled
// bookings on the given date. Inactivity rules are not subtracted here:
// they are informational and never consulted at read time.
func (s *Service) FindOccupiedSlots(ctx context.Context, officeID int64, date time.Time) ([]TimeSlot, error) {
	if _, err := s.offices.GetByID(ctx, officeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}

	rows, err := s.bookings.FindByOfficeAndDate(ctx, officeID, date)
	if err != nil {
		return nil, err
	}
	out := make([]TimeSlot, 0, len(rows))
	for _, b := range rows {
		out = append(out, TimeSlot{Start: b.StartTime, End: b.EndTime})
	}
	return out, nil
}

func (s *Service) GetMyBookings(ctx context.Context, q repository.RenterBookingsQuery) ([]domain.Booking, int64, error) {
	rows, err := s.bookings.FindByRenter(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookings.CountByRenter(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) HasBookedOffice(ctx context.Context, renterEmail string, officeID int64) (bool, error) {
	return s.bookings.ExistsByRenterAndOffice(ctx, renterEmail, officeID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}
