package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, user.ErrActorMissing):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidStateTransition):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "You are not allowed to perform this action")
	case errors.Is(err, leave.ErrInvalidDecision):
		BadRequest(w, "Decision must be approve or reject", nil)
	case errors.Is(err, leave.ErrBalanceUpdateFailed):
		ServiceUnavailable(w, "Leave balance could not be updated, the decision was not saved")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
