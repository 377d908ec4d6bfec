package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	// Set from the authenticated actor, never from the body
	RequesterID   string `json:"-"`
	RequesterName string `json:"-"`

	LeaveType string `json:"leave_type" validate:"required,oneof=vacation sick personal emergency"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	DayCount  int    `json:"day_count" validate:"gte=1"`
	Reason    string `json:"reason" validate:"required,max=2000"`
}

func (r *SubmitLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.RequesterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_id",
			Message: "requester_id is required",
		})
	}

	// Reason must carry text, whitespace alone does not count
	if !errs.Has("reason") && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !errs.Has("start_date") && !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a date in YYYY-MM-DD format",
		})
	}
	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !errs.Has("end_date") && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed start and end date. Call after Validate.
func (r *SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	startDate, _ := validator.IsValidDate(r.StartDate)
	endDate, _ := validator.IsValidDate(r.EndDate)
	return startDate, endDate
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateStatusRequest) Decision() Decision {
	if LeaveRequestStatus(r.Status) == LeaveRequestStatusApproved {
		return DecisionApprove
	}
	return DecisionReject
}

type AddReplyRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

func (r *AddReplyRequest) Validate() error {
	errs := validator.Struct(r)

	if !errs.Has("message") && validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	Status *string `json:"status,omitempty"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		valid := []string{
			string(LeaveRequestStatusPending),
			string(LeaveRequestStatusApproved),
			string(LeaveRequestStatusRejected),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReplyResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	From      string    `json:"from"`
	Timestamp time.Time `json:"timestamp"`
}

type LeaveRequestResponse struct {
	ID             string          `json:"id"`
	RequesterID    string          `json:"requester_id"`
	RequesterName  string          `json:"requester_name"`
	LeaveType      string          `json:"leave_type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	DayCount       int             `json:"day_count"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	DecidedBy      *string         `json:"decided_by"`
	DecidedAt      *time.Time      `json:"decided_at"`
	Replies        []ReplyResponse `json:"replies"`
	AllowedActions []Action        `json:"allowed_actions"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Requests   []LeaveRequestResponse `json:"leave_requests"`
}

type LeaveBalanceResponse struct {
	UserID        string `json:"user_id"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

func NewReplyResponse(reply Reply) ReplyResponse {
	return ReplyResponse{
		ID:        reply.ID,
		Message:   reply.Message,
		From:      reply.AuthorName,
		Timestamp: reply.CreatedAt,
	}
}

// NewLeaveRequestResponse maps a request and the actions its viewer may take
func NewLeaveRequestResponse(request LeaveRequest, actions []Action) LeaveRequestResponse {
	replies := make([]ReplyResponse, 0, len(request.Replies))
	for _, reply := range request.Replies {
		replies = append(replies, NewReplyResponse(reply))
	}
	if actions == nil {
		actions = []Action{}
	}

	return LeaveRequestResponse{
		ID:             request.ID,
		RequesterID:    request.RequesterID,
		RequesterName:  request.RequesterName,
		LeaveType:      string(request.LeaveType),
		StartDate:      request.StartDate.Format(DateLayout),
		EndDate:        request.EndDate.Format(DateLayout),
		DayCount:       request.DayCount,
		Reason:         request.Reason,
		Status:         string(request.Status),
		SubmittedAt:    request.SubmittedAt,
		DecidedBy:      request.DecidedBy,
		DecidedAt:      request.DecidedAt,
		Replies:        replies,
		AllowedActions: actions,
	}
}

func NewLeaveBalanceResponse(balance LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		UserID:        balance.UserID,
		Year:          balance.Year,
		TotalDays:     balance.TotalDays,
		UsedDays:      balance.UsedDays,
		RemainingDays: balance.RemainingDays(),
	}
}
