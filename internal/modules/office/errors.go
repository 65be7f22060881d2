package office

import "errors"

var (
	ErrOfficeNotFound    = errors.New("office not found")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrNotBranchOwner    = errors.New("actor does not own this branch")
	ErrInvalidInactivity = errors.New("inactivity must have exactly one of specific date or weekday")
	ErrInvalidDeleteDate = errors.New("deletion effective date must not be in the past")
)
