package repository

import (
	"context"
	"errors"
	"time"

	"officebook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	OfficeID          int64      `gorm:"column:office_id"`
	RenterEmail       string     `gorm:"column:renter_email"`
	StartTime         time.Time  `gorm:"column:start_time"`
	EndTime           time.Time  `gorm:"column:end_time"`
	Hours             int        `gorm:"column:hours"`
	Price             float64    `gorm:"column:price"`
	Status            string     `gorm:"column:status"`
	PaymentExternalID *string    `gorm:"column:payment_external_id"`
	PaymentAmount     *float64   `gorm:"column:payment_amount"`
	PaymentFee        *float64   `gorm:"column:payment_fee"`
	PaymentCurrency   *string    `gorm:"column:payment_currency"`
	PaymentMethod     *string    `gorm:"column:payment_method"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	SettledAt         *time.Time `gorm:"column:settled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:          m.ID,
		OfficeID:    m.OfficeID,
		RenterEmail: m.RenterEmail,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Hours:       m.Hours,
		Price:       m.Price,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.PaymentExternalID != nil {
		b.Payment = &domain.PaymentRecord{ExternalID: *m.PaymentExternalID}
		if m.PaymentAmount != nil {
			b.Payment.Amount = *m.PaymentAmount
		}
		if m.PaymentFee != nil {
			b.Payment.Fee = *m.PaymentFee
		}
		if m.PaymentCurrency != nil {
			b.Payment.Currency = *m.PaymentCurrency
		}
		if m.PaymentMethod != nil {
			b.Payment.Method = *m.PaymentMethod
		}
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:          b.ID,
		OfficeID:    b.OfficeID,
		RenterEmail: b.RenterEmail,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Hours:       b.Hours,
		Price:       b.Price,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Payment != nil {
		id := b.Payment.ExternalID
		amount := b.Payment.Amount
		fee := b.Payment.Fee
		currency := b.Payment.Currency
		method := b.Payment.Method
		m.PaymentExternalID = &id
		m.PaymentAmount = &amount
		m.PaymentFee = &fee
		m.PaymentCurrency = &currency
		m.PaymentMethod = &method
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainBooking(m), nil
}

// FindByOfficeAndDate returns pending and scheduled bookings whose start
// falls on the given calendar date. Pending bookings occupy their slot too:
// they are holding gateway-pending funds.
func (r *BookingRepository) FindByOfficeAndDate(ctx context.Context, officeID int64, date time.Time) ([]domain.Booking, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	next := day.Add(24 * time.Hour)

	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("office_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			officeID, []string{string(domain.BookingPending), string(domain.BookingScheduled)}, day, next).
		Order("start_time").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CheckAvailability probes for overlapping pending/scheduled bookings. The
// authoritative guard is the bookings_no_overlap exclusion constraint; this
// pre-check only avoids registering a gateway preference for an obvious
// conflict.
func (r *BookingRepository) CheckAvailability(ctx context.Context, officeID int64, start, end time.Time) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE office_id = ?
  AND status IN ('pending', 'scheduled')
  AND tstzrange(start_time, end_time, '[)') && tstzrange(?, ?, '[)')
`
	tx := r.db.WithContext(ctx).Raw(q, officeID, start, end).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

type RenterBookingsQuery struct {
	RenterEmail string
	OnlyCurrent bool
	Date        *time.Time
	Offset      int
	Limit       int
}

func (r *BookingRepository) renterScope(ctx context.Context, q RenterBookingsQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("renter_email = ?", q.RenterEmail)
	if q.OnlyCurrent {
		tx = tx.Where("end_time > ?", time.Now())
	}
	if q.Date != nil {
		day := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, q.Date.Location())
		tx = tx.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
	}
	return tx
}

func (r *BookingRepository) FindByRenter(ctx context.Context, q RenterBookingsQuery) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.renterScope(ctx, q).Order("start_time DESC").Offset(q.Offset)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountByRenter(ctx context.Context, q RenterBookingsQuery) (int64, error) {
	var cnt int64
	if err := r.renterScope(ctx, q).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *BookingRepository) ExistsByRenterAndOffice(ctx context.Context, renterEmail string, officeID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("renter_email = ? AND office_id = ?", renterEmail, officeID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// SchedulePaidIdempotent attaches the payment record and moves the booking
// to scheduled, but only while it is still pending. Row-locked so concurrent
// webhook re-deliveries cannot both apply. Returns whether this call changed
// anything.
func (r *BookingRepository) SchedulePaidIdempotent(ctx context.Context, bookingID int64, p domain.PaymentRecord, settledAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if m.Status != string(domain.BookingPending) {
			changed = false
			return nil
		}
		res := tx.Model(&bookingModel{}).Where("id = ?", bookingID).Updates(map[string]interface{}{
			"status":              string(domain.BookingScheduled),
			"payment_external_id": p.ExternalID,
			"payment_amount":      p.Amount,
			"payment_fee":         p.Fee,
			"payment_currency":    p.Currency,
			"payment_method":      p.Method,
			"settled_at":          settledAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("booking row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}
