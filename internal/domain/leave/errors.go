package leave

import "errors"

var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrInvalidStateTransition = errors.New("leave request already decided")
	ErrUnauthorized           = errors.New("action not permitted for this user")
	ErrBalanceUpdateFailed    = errors.New("leave balance update failed")
	ErrBalanceNotFound        = errors.New("leave balance not found")
	ErrInvalidDecision        = errors.New("invalid decision")
)
