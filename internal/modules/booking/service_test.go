package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"officebook/internal/domain"
	"officebook/internal/gateway"
	"officebook/internal/repository"
)

type mockOfficeRepo struct {
	mock.Mock
}

func (m *mockOfficeRepo) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Office), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CheckAvailability(ctx context.Context, officeID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, officeID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) FindByOfficeAndDate(ctx context.Context, officeID int64, date time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, officeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByRenter(ctx context.Context, q repository.RenterBookingsQuery) ([]domain.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByRenter(ctx context.Context, q repository.RenterBookingsQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) ExistsByRenterAndOffice(ctx context.Context, renterEmail string, officeID int64) (bool, error) {
	args := m.Called(ctx, renterEmail, officeID)
	return args.Bool(0), args.Error(1)
}

type mockAcquisitionReader struct {
	mock.Mock
}

func (m *mockAcquisitionReader) GetAcquisitionByID(ctx context.Context, id int64) (*domain.MembershipAcquisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipAcquisition), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePreference(ctx context.Context, info gateway.PreferenceInfo) (string, error) {
	args := m.Called(ctx, info)
	return args.String(0), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishJSON(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

func newTestService() (*Service, *mockOfficeRepo, *mockBookingRepo, *mockAcquisitionReader, *mockGateway, *mockEvents) {
	offices := new(mockOfficeRepo)
	bookings := new(mockBookingRepo)
	acquisitions := new(mockAcquisitionReader)
	gw := new(mockGateway)
	events := new(mockEvents)
	svc := NewService(offices, bookings, acquisitions, gw, events, nil)
	return svc, offices, bookings, acquisitions, gw, events
}

func testOffice() *domain.Office {
	return &domain.Office{
		ID:       1,
		BranchID: 10,
		Name:     "Focus Room",
		Price:    400,
		Capacity: 2,
		Privacy:  domain.OfficePrivate,
	}
}

// Tuesday 2026-09-01, hour-aligned afternoon block.
var (
	tueStart = time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	tueEnd   = time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
)

func TestCreateBooking_DirectPendingWithPrice(t *testing.T) {
	svc, offices, bookings, _, gw, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 77
		}).Return(nil)
	gw.On("CreatePreference", mock.Anything, mock.AnythingOfType("gateway.PreferenceInfo")).Return("pref-123", nil)

	b, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 4, b.Hours)
	assert.Equal(t, 1600.0, b.Price)
	assert.Equal(t, int64(77), b.ID)
	gw.AssertCalled(t, "CreatePreference", mock.Anything, mock.MatchedBy(func(info gateway.PreferenceInfo) bool {
		return info.Amount == 1600.0 && info.PayerEmail == "renter@example.com"
	}))
}

func TestCreateBooking_RejectsUnalignedTimes(t *testing.T) {
	svc, offices, bookings, _, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"half hour start", tueStart.Add(30 * time.Minute), tueEnd},
		{"end before start", tueEnd, tueStart},
		{"zero duration", tueStart, tueStart},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
				OfficeID:  1,
				StartTime: tc.start,
				EndTime:   tc.end,
			})
			assert.ErrorIs(t, err, ErrInvalidScheduleTime)
		})
	}
	bookings.AssertNotCalled(t, "CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_OfficeNotFound(t *testing.T) {
	svc, offices, _, _, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  99,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.ErrorIs(t, err, ErrOfficeNotFound)
}

func TestCreateBooking_OfficeDeletedEffectiveDatePassed(t *testing.T) {
	svc, offices, bookings, _, _, _ := newTestService()

	yesterday := time.Now().Add(-24 * time.Hour)
	office := testOffice()
	office.DeletedAt = &yesterday
	offices.On("GetByID", mock.Anything, int64(1)).Return(office, nil)

	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.ErrorIs(t, err, ErrOfficeIsDeleted)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_FutureDeletionStillBookable(t *testing.T) {
	svc, offices, bookings, _, gw, _ := newTestService()

	nextMonth := time.Now().Add(30 * 24 * time.Hour)
	office := testOffice()
	office.DeletedAt = &nextMonth
	offices.On("GetByID", mock.Anything, int64(1)).Return(office, nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	gw.On("CreatePreference", mock.Anything, mock.Anything).Return("pref-1", nil)

	b, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	svc, offices, bookings, _, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(false, nil)

	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.ErrorIs(t, err, ErrOfficeNotAvailable)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ConstraintRaceMapsToNotAvailable(t *testing.T) {
	svc, offices, bookings, _, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{
		Code:           "23P01",
		ConstraintName: "bookings_no_overlap",
	})

	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.ErrorIs(t, err, ErrOfficeNotAvailable)
}

func TestCreateBooking_GatewayFailure(t *testing.T) {
	svc, offices, bookings, _, gw, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	gw.On("CreatePreference", mock.Anything, mock.Anything).Return("", assert.AnError)

	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:  1,
		StartTime: tueStart,
		EndTime:   tueEnd,
	})
	assert.ErrorIs(t, err, ErrPaymentGateway)
}

func boughtAcquisition(days ...time.Weekday) *domain.MembershipAcquisition {
	return &domain.MembershipAcquisition{
		ID:           5,
		MembershipID: 3,
		BuyerEmail:   "renter@example.com",
		Status:       domain.AcquisitionBought,
		AccessDays:   days,
	}
}

func TestCreateBooking_MembershipZeroPriceScheduled(t *testing.T) {
	svc, offices, bookings, acquisitions, gw, events := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(boughtAcquisition(time.Tuesday), nil)
	bookings.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 42
		}).Return(nil)
	events.On("PublishJSON", "booking_confirmed", mock.Anything).Return(nil)

	acqID := int64(5)
	b, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart,
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingScheduled, b.Status)
	assert.Equal(t, 0.0, b.Price)
	events.AssertCalled(t, "PublishJSON", "booking_confirmed", mock.Anything)
	gw.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything)
}

func TestCreateBooking_MembershipWrongWeekday(t *testing.T) {
	svc, offices, bookings, acquisitions, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(boughtAcquisition(time.Monday, time.Friday), nil)

	acqID := int64(5)
	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart,
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})
	assert.ErrorIs(t, err, ErrMembershipAcquisitionNotActive)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_MembershipStillPending(t *testing.T) {
	svc, offices, bookings, acquisitions, _, _ := newTestService()

	acq := boughtAcquisition(time.Tuesday)
	acq.Status = domain.AcquisitionPending

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(acq, nil)

	acqID := int64(5)
	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart,
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})
	assert.ErrorIs(t, err, ErrMembershipAcquisitionNotActive)
}

func TestCreateBooking_MembershipOfAnotherRenter(t *testing.T) {
	svc, offices, bookings, acquisitions, _, _ := newTestService()

	acq := boughtAcquisition(time.Tuesday)
	acq.BuyerEmail = "someone-else@example.com"

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(acq, nil)

	acqID := int64(5)
	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart,
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})
	assert.ErrorIs(t, err, ErrMembershipAcquisitionForbidden)
}

func TestCreateBooking_MembershipNotFound(t *testing.T) {
	svc, offices, bookings, acquisitions, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(1), tueStart, tueEnd).Return(true, nil)
	acquisitions.On("GetAcquisitionByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	acqID := int64(5)
	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart,
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})
	assert.ErrorIs(t, err, ErrMembershipAcquisitionNotFound)
}

// Schedule validation runs before acquisition checks, so a broken schedule
// wins even when the acquisition id is bogus.
func TestCreateBooking_ScheduleCheckedBeforeMembership(t *testing.T) {
	svc, offices, _, acquisitions, _, _ := newTestService()

	offices.On("GetByID", mock.Anything, int64(1)).Return(testOffice(), nil)

	acqID := int64(999)
	_, err := svc.CreateBooking(context.Background(), "renter@example.com", CreateBookingRequest{
		OfficeID:                1,
		StartTime:               tueStart.Add(15 * time.Minute),
		EndTime:                 tueEnd,
		MembershipAcquisitionID: &acqID,
	})
	assert.ErrorIs(t, err, ErrInvalidScheduleTime)
	acquisitions.AssertNotCalled(t, "GetAcquisitionByID", mock.Anything, mock.Anything)
}

// Inactivity rules are informational: a Monday closure does not filter
// Monday bookings out of the occupied-slot listing.
func TestFindOccupiedSlots_IgnoresInactivityRules(t *testing.T) {
	svc, offices, bookings, _, _, _ := newTestService()

	monday := time.Monday
	office := testOffice()
	office.Inactivities = []domain.Inactivity{{ID: 1, OfficeID: 1, Weekday: &monday}}
	offices.On("GetByID", mock.Anything, int64(1)).Return(office, nil)

	monStart := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) // a Monday
	monEnd := monStart.Add(2 * time.Hour)
	bookings.On("FindByOfficeAndDate", mock.Anything, int64(1), monStart).Return([]domain.Booking{
		{ID: 8, OfficeID: 1, StartTime: monStart, EndTime: monEnd, Status: domain.BookingScheduled},
	}, nil)

	slots, err := svc.FindOccupiedSlots(context.Background(), 1, monStart)
	assert.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, monStart, slots[0].Start)
	assert.Equal(t, monEnd, slots[0].End)
}

func TestGetMyBookings_ReturnsRowsAndTotal(t *testing.T) {
	svc, _, bookings, _, _, _ := newTestService()

	q := repository.RenterBookingsQuery{RenterEmail: "renter@example.com", Limit: 10}
	bookings.On("FindByRenter", mock.Anything, q).Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil)
	bookings.On("CountByRenter", mock.Anything, q).Return(int64(7), nil)

	rows, total, err := svc.GetMyBookings(context.Background(), q)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(7), total)
}
