package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveViewDept Permission = "leave.view_department"
	PermissionLeaveViewAll  Permission = "leave.view_all"
	PermissionLeaveDecide   Permission = "leave.decide"
	PermissionLeaveReply    Permission = "leave.reply"

	// Balances
	PermissionBalanceViewOwn Permission = "balance.view_own"
	PermissionBalanceViewAll Permission = "balance.view_all"

	// Reports
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin oversees everything but does not take part in reply threads
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveDecide,
		PermissionBalanceViewOwn,
		PermissionBalanceViewAll,
		PermissionDashboardView,
	},
	RoleHR: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveDecide,
		PermissionLeaveReply,
		PermissionBalanceViewOwn,
		PermissionBalanceViewAll,
		PermissionDashboardView,
	},
	RoleManager: {
		// Manager handles requests of their own department
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewDept,
		PermissionLeaveDecide,
		PermissionLeaveReply,
		PermissionBalanceViewOwn,
		PermissionDashboardView,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionBalanceViewOwn,
		PermissionDashboardView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
