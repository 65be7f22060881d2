package domain

import (
	"errors"
	"time"
)

type OfficePrivacy string

const (
	OfficePrivate OfficePrivacy = "private"
	OfficeShared  OfficePrivacy = "shared"
)

type Office struct {
	ID        int64         `json:"id"`
	BranchID  int64         `json:"branch_id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Price     float64       `json:"price" validate:"required,gte=0"`
	Capacity  int           `json:"capacity" validate:"required,gt=0"`
	Privacy   OfficePrivacy `json:"privacy"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Inactivities []Inactivity `json:"inactivities,omitempty"`
}

// IsDeletedAt reports whether the office is unbookable at the given moment.
// The deletion date is an effective date: the office stays bookable until it passes.
func (o *Office) IsDeletedAt(now time.Time) bool {
	return o.DeletedAt != nil && !now.Before(*o.DeletedAt)
}

type OfficeBranch struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	OwnerEmail string    `json:"owner_email" validate:"required,email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var ErrInvalidInactivity = errors.New("inactivity must have exactly one of specific date or weekday")

// Inactivity marks an office as closed either on one specific date or on
// every occurrence of a weekday. Exactly one of the two must be set.
type Inactivity struct {
	ID           int64         `json:"id"`
	OfficeID     int64         `json:"office_id"`
	SpecificDate *time.Time    `json:"specific_date,omitempty"`
	Weekday      *time.Weekday `json:"weekday,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

func NewInactivity(officeID int64, specificDate *time.Time, weekday *time.Weekday) (*Inactivity, error) {
	if (specificDate == nil) == (weekday == nil) {
		return nil, ErrInvalidInactivity
	}
	return &Inactivity{OfficeID: officeID, SpecificDate: specificDate, Weekday: weekday}, nil
}

// BlocksDate reports whether the rule covers the given calendar date.
// Informational only: slot lookup and booking creation do not consult it.
func (i *Inactivity) BlocksDate(date time.Time) bool {
	if i.SpecificDate != nil {
		y1, m1, d1 := i.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if i.Weekday != nil {
		return *i.Weekday == date.Weekday()
	}
	return false
}
