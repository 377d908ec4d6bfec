package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // System administrator - sees everything, cannot reply
	RoleHR       Role = "hr"       // HR staff - sees and handles every request
	RoleManager  Role = "manager"  // Approves requests of their own department
	RoleEmployee Role = "employee" // Regular employee
)

type Department string

const (
	DepartmentSales      Department = "sales"
	DepartmentProduction Department = "production"
	DepartmentHR         Department = "hr"
	DepartmentAdmin      Department = "admin"
)

var (
	ValidRoles       = []string{string(RoleAdmin), string(RoleHR), string(RoleManager), string(RoleEmployee)}
	ValidDepartments = []string{string(DepartmentSales), string(DepartmentProduction), string(DepartmentHR), string(DepartmentAdmin)}
)

// User is a row of the users table. Profile CRUD lives outside this service;
// the leave engine only reads it to resolve departments and names.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Role       Role
	Department Department
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor is the authenticated user performing an operation.
// It is built once per request from the verified token and never mutated.
type Actor struct {
	ID         string
	Name       string
	Role       Role
	Department Department
}

// IsApprover checks if the actor's role may decide leave requests
func (a Actor) IsApprover() bool {
	return HasPermission(a.Role, PermissionLeaveDecide)
}

// SeesEverything checks if the actor sees every leave request regardless of department
func (a Actor) SeesEverything() bool {
	return HasPermission(a.Role, PermissionLeaveViewAll)
}

func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentSales, DepartmentProduction, DepartmentHR, DepartmentAdmin:
		return true
	}
	return false
}
