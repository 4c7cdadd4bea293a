package attendance

import "errors"

// Attendance domain errors
var (
	// Session errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoOpenSession     = errors.New("no open attendance session to check out of")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
