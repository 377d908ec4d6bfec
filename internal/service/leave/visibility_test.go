package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

var (
	admin        = user.Actor{ID: "u-admin", Name: "Ada Admin", Role: user.RoleAdmin, Department: user.DepartmentAdmin}
	hr           = user.Actor{ID: "u-hr", Name: "Hana HR", Role: user.RoleHR, Department: user.DepartmentHR}
	salesManager = user.Actor{ID: "u-mgr-sales", Name: "Sam Sales", Role: user.RoleManager, Department: user.DepartmentSales}
	prodManager  = user.Actor{ID: "u-mgr-prod", Name: "Pat Prod", Role: user.RoleManager, Department: user.DepartmentProduction}
	salesEmp     = user.Actor{ID: "u-emp-sales", Name: "Eve Sales", Role: user.RoleEmployee, Department: user.DepartmentSales}
	prodEmp      = user.Actor{ID: "u-emp-prod", Name: "Paul Prod", Role: user.RoleEmployee, Department: user.DepartmentProduction}
)

func decided(request leave.LeaveRequest, status leave.LeaveRequestStatus, by string) leave.LeaveRequest {
	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	request.Status = status
	request.DecidedBy = &by
	request.DecidedAt = &at
	return request
}

func TestCanView(t *testing.T) {
	salesPending := leave.LeaveRequest{ID: "r1", RequesterID: salesEmp.ID, Status: leave.LeaveRequestStatusPending}
	prodPending := leave.LeaveRequest{ID: "r2", RequesterID: prodEmp.ID, Status: leave.LeaveRequestStatusPending}
	prodDecidedBySales := decided(prodPending, leave.LeaveRequestStatusApproved, salesManager.ID)
	prodDecidedByHR := decided(prodPending, leave.LeaveRequestStatusRejected, hr.ID)
	unknownRequester := leave.LeaveRequest{ID: "r3", RequesterID: "u-ghost", Status: leave.LeaveRequestStatusPending}

	departments := DepartmentLookup{
		salesEmp.ID: user.DepartmentSales,
		prodEmp.ID:  user.DepartmentProduction,
	}

	tests := []struct {
		name        string
		actor       user.Actor
		request     leave.LeaveRequest
		departments DepartmentLookup
		want        bool
	}{
		{"admin sees other department", admin, prodPending, departments, true},
		{"hr sees other department", hr, prodPending, departments, true},
		{"hr sees without lookup", hr, prodPending, nil, true},
		{"manager sees own department", salesManager, salesPending, departments, true},
		{"manager blind to other department", salesManager, prodPending, departments, false},
		{"manager sees what they decided", salesManager, prodDecidedBySales, departments, true},
		{"manager blind to other decider", salesManager, prodDecidedByHR, departments, false},
		{"manager unknown requester", salesManager, unknownRequester, departments, false},
		{"degraded manager sees pending", salesManager, prodPending, nil, true},
		{"degraded manager sees own decisions", salesManager, prodDecidedBySales, nil, true},
		{"degraded manager blind to decided by others", salesManager, prodDecidedByHR, nil, false},
		{"employee sees own", salesEmp, salesPending, departments, true},
		{"employee blind to colleague", prodEmp, salesPending, departments, false},
		{"unknown role sees nothing", user.Actor{ID: salesEmp.ID, Role: "intern"}, salesPending, departments, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.actor, tt.request, tt.departments))
		})
	}
}

func TestFilterVisible_EmployeeSeesOnlyOwn(t *testing.T) {
	requests := []leave.LeaveRequest{
		{ID: "r3", RequesterID: salesEmp.ID, Status: leave.LeaveRequestStatusPending},
		{ID: "r2", RequesterID: prodEmp.ID, Status: leave.LeaveRequestStatusPending},
		decided(leave.LeaveRequest{ID: "r1", RequesterID: salesEmp.ID}, leave.LeaveRequestStatusApproved, hr.ID),
	}

	visible := FilterVisible(salesEmp, requests, DepartmentLookup{})
	assert.Len(t, visible, 2)
	for _, request := range visible {
		assert.Equal(t, salesEmp.ID, request.RequesterID)
	}
	assert.Equal(t, "r3", visible[0].ID)
	assert.Equal(t, "r1", visible[1].ID)

	assert.Len(t, FilterVisible(admin, requests, nil), len(requests))
	assert.Len(t, FilterVisible(hr, requests, nil), len(requests))
}

func TestAllowedActions(t *testing.T) {
	departments := DepartmentLookup{
		salesEmp.ID:     user.DepartmentSales,
		salesManager.ID: user.DepartmentSales,
	}
	pending := leave.LeaveRequest{ID: "r1", RequesterID: salesEmp.ID, Status: leave.LeaveRequestStatusPending}
	approved := decided(pending, leave.LeaveRequestStatusApproved, salesManager.ID)
	managerOwn := leave.LeaveRequest{ID: "r2", RequesterID: salesManager.ID, Status: leave.LeaveRequestStatusPending}

	tests := []struct {
		name    string
		actor   user.Actor
		request leave.LeaveRequest
		want    []leave.Action
	}{
		{"manager on pending", salesManager, pending, []leave.Action{leave.ActionDecide, leave.ActionReply}},
		{"manager on approved", salesManager, approved, []leave.Action{leave.ActionReply}},
		{"hr on pending", hr, pending, []leave.Action{leave.ActionDecide, leave.ActionReply}},
		{"admin never replies", admin, pending, []leave.Action{leave.ActionDecide}},
		{"admin on approved", admin, approved, []leave.Action{}},
		{"employee on own", salesEmp, pending, []leave.Action{}},
		{"manager of other department", prodManager, pending, []leave.Action{}},
		// Approvers in scope may decide their own request
		{"manager on own pending", salesManager, managerOwn, []leave.Action{leave.ActionDecide, leave.ActionReply}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedActions(tt.actor, tt.request, departments))
		})
	}
}
