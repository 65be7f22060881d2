package booking

import "errors"

var (
	ErrInvalidScheduleTime            = errors.New("invalid schedule time")
	ErrOfficeNotFound                 = errors.New("office not found")
	ErrOfficeIsDeleted                = errors.New("office is deleted")
	ErrOfficeNotAvailable             = errors.New("office is not available")
	ErrMembershipAcquisitionNotFound  = errors.New("membership acquisition not found")
	ErrMembershipAcquisitionForbidden = errors.New("membership acquisition belongs to another renter")
	ErrMembershipAcquisitionNotActive = errors.New("membership acquisition is not active for the requested day")
	ErrPaymentGateway                 = errors.New("payment gateway error")
)
