package membership

import "time"

// PurchaseRequest is the renter's intent to buy access to a membership on a
// subset of its configured weekdays (0=Sunday ... 6=Saturday).
type PurchaseRequest struct {
	AccessDays []int `json:"access_days" binding:"required,min=1,dive,gte=0,lte=6"`
}

func (r PurchaseRequest) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(r.AccessDays))
	seen := make(map[int]bool, len(r.AccessDays))
	for _, d := range r.AccessDays {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, time.Weekday(d))
	}
	return out
}

// PurchaseResponse returns the pending acquisition together with the gateway
// preference the buyer must complete checkout against.
type PurchaseResponse struct {
	AcquisitionID int64   `json:"acquisition_id"`
	MembershipID  int64   `json:"membership_id"`
	Status        string  `json:"status"`
	AccessDays    []int   `json:"access_days"`
	Price         float64 `json:"price"`
	PreferenceID  string  `json:"preference_id"`
}
