package office

import "time"

type CreateBranchRequest struct {
	Name   string `json:"name" binding:"required"`
	City   string `json:"city" binding:"required"`
	Street string `json:"street" binding:"required"`
}

type CreateOfficeRequest struct {
	BranchID int64   `json:"branch_id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Capacity int     `json:"capacity" binding:"required,gt=0"`
	Privacy  string  `json:"privacy" binding:"omitempty,oneof=private shared"`
}

// DeleteOfficeRequest carries the effective date; the office stays bookable
// until the date passes.
type DeleteOfficeRequest struct {
	EffectiveDate time.Time `json:"effective_date" binding:"required"`
}

type AddInactivityRequest struct {
	SpecificDate *time.Time `json:"specific_date"`
	Weekday      *int       `json:"weekday" binding:"omitempty,gte=0,lte=6"`
}
