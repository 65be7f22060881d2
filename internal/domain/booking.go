package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingScheduled BookingStatus = "scheduled"
)

// PaymentRecord captures the gateway truth for a settled payment. It is
// attached exactly once, during the pending -> terminal transition, and is
// never mutated afterwards.
type PaymentRecord struct {
	ExternalID string  `json:"external_id"`
	Amount     float64 `json:"amount"`
	Fee        float64 `json:"fee"`
	Currency   string  `json:"currency"`
	Method     string  `json:"method"`
}

type Booking struct {
	ID          int64          `json:"id"`
	OfficeID    int64          `json:"office_id" validate:"required"`
	RenterEmail string         `json:"renter_email" validate:"required,email"`
	StartTime   time.Time      `json:"start_time" validate:"required"`
	EndTime     time.Time      `json:"end_time" validate:"required"`
	Hours       int            `json:"hours"`
	Price       float64        `json:"price"`
	Status      BookingStatus  `json:"status"`
	Payment     *PaymentRecord `json:"payment,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// HourAligned reports whether both timestamps fall exactly on hour
// boundaries and the range is non-empty.
func HourAligned(start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	for _, t := range []time.Time{start, end} {
		if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return false
		}
	}
	return true
}

// Overlaps reports whether two [start, end) ranges intersect. Two ranges do
// not overlap only when one ends at or before the other starts.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
