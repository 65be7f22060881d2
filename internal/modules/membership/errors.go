package membership

import "errors"

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInvalidAccessDays  = errors.New("requested days are not covered by this membership")
	ErrPaymentGateway     = errors.New("payment gateway error")
)
