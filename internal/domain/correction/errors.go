package correction

import "errors"

// Correction workflow errors
var (
	ErrCorrectionAlreadyPending = errors.New("a correction request is already pending for this record")
	ErrNoPendingCorrection      = errors.New("no pending correction request on this record")
	ErrInvalidRequestedTime     = errors.New("requested time would leave check-out before check-in")
)
