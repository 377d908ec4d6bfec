package leave

import (
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
)

// DepartmentLookup maps requester IDs to their department. A nil lookup means
// the directory could not be reached and manager visibility runs degraded.
// Requesters missing from a non-nil lookup match no department.
type DepartmentLookup map[string]user.Department

// CanView reports whether actor may see request. Rules are evaluated in order:
// admin and hr see everything, a manager sees their department plus whatever
// they decided, everyone else sees only their own requests.
func CanView(actor user.Actor, request leave.LeaveRequest, departments DepartmentLookup) bool {
	switch {
	case actor.SeesEverything():
		return true
	case user.HasPermission(actor.Role, user.PermissionLeaveViewDept):
		if decidedBy(request, actor.ID) {
			return true
		}
		if departments == nil {
			return request.IsPending()
		}
		department, ok := departments[request.RequesterID]
		return ok && department == actor.Department
	case user.HasPermission(actor.Role, user.PermissionLeaveViewOwn):
		return request.RequesterID == actor.ID
	}
	return false
}

// FilterVisible keeps the requests actor may see, preserving order.
func FilterVisible(actor user.Actor, requests []leave.LeaveRequest, departments DepartmentLookup) []leave.LeaveRequest {
	visible := make([]leave.LeaveRequest, 0, len(requests))
	for _, request := range requests {
		if CanView(actor, request, departments) {
			visible = append(visible, request)
		}
	}
	return visible
}

// CanAttemptDecide checks role and visibility only. Whether the request is
// still pending is settled by the store so that a late decide reports an
// invalid transition instead of a permission error.
func CanAttemptDecide(actor user.Actor, request leave.LeaveRequest, departments DepartmentLookup) bool {
	return actor.IsApprover() && CanView(actor, request, departments)
}

func CanReply(actor user.Actor, request leave.LeaveRequest, departments DepartmentLookup) bool {
	return user.HasPermission(actor.Role, user.PermissionLeaveReply) && CanView(actor, request, departments)
}

// AllowedActions lists what actor may do to request right now.
func AllowedActions(actor user.Actor, request leave.LeaveRequest, departments DepartmentLookup) []leave.Action {
	actions := make([]leave.Action, 0, 2)
	if request.IsPending() && CanAttemptDecide(actor, request, departments) {
		actions = append(actions, leave.ActionDecide)
	}
	if CanReply(actor, request, departments) {
		actions = append(actions, leave.ActionReply)
	}
	return actions
}

func decidedBy(request leave.LeaveRequest, actorID string) bool {
	return request.DecidedBy != nil && *request.DecidedBy == actorID
}
