package booking

import "time"

type CreateBookingRequest struct {
	OfficeID                int64     `json:"office_id" binding:"required"`
	StartTime               time.Time `json:"start_time" binding:"required"`
	EndTime                 time.Time `json:"end_time" binding:"required"`
	MembershipAcquisitionID *int64    `json:"membership_acquisition_id,omitempty"`
}

// ScheduleInfo is the requested time range, timezone-aware.
type ScheduleInfo struct {
	Start time.Time
	End   time.Time
}

func (s ScheduleInfo) Hours() int {
	return int(s.End.Sub(s.Start).Hours())
}
