package user

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrApproverAccessRequired = errors.New("approver access required")
)
