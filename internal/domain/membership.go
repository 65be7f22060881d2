package domain

import "time"

type MembershipAcquisitionStatus string

const (
	AcquisitionPending MembershipAcquisitionStatus = "pending"
	AcquisitionBought  MembershipAcquisitionStatus = "bought"
)

// Membership is a branch-level subscription product granting booking rights
// on a configured set of weekdays.
type Membership struct {
	ID        int64          `json:"id"`
	BranchID  int64          `json:"branch_id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Price     float64        `json:"price" validate:"required,gte=0"`
	Days      []time.Weekday `json:"days"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (m *Membership) AllowsDay(d time.Weekday) bool {
	for _, day := range m.Days {
		if day == d {
			return true
		}
	}
	return false
}

type MembershipAcquisition struct {
	ID           int64                       `json:"id"`
	MembershipID int64                       `json:"membership_id" validate:"required"`
	BuyerEmail   string                      `json:"buyer_email" validate:"required,email"`
	Status       MembershipAcquisitionStatus `json:"status"`
	AccessDays   []time.Weekday              `json:"access_days"`
	Payment      *PaymentRecord              `json:"payment,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// ActiveOn reports whether the acquisition can back a booking on the given
// weekday: it must be bought and the day must be in its access set.
func (a *MembershipAcquisition) ActiveOn(d time.Weekday) bool {
	if a.Status != AcquisitionBought {
		return false
	}
	for _, day := range a.AccessDays {
		if day == d {
			return true
		}
	}
	return false
}
