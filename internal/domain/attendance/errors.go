package attendance

import "errors"

var (
	ErrLeaveNotFound = errors.New("leave entry not found")
	ErrLeaveOverlap  = errors.New("leave entry overlaps an existing one")
)
