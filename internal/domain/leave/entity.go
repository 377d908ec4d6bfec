package leave

import "time"

type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeEmergency LeaveType = "emergency"
)

var ValidLeaveTypes = []string{
	string(LeaveTypeVacation),
	string(LeaveTypeSick),
	string(LeaveTypePersonal),
	string(LeaveTypeEmergency),
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// IsTerminal reports whether no further transition may leave this status.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the terminal status a decision moves a request to.
func (d Decision) Status() (LeaveRequestStatus, error) {
	switch d {
	case DecisionApprove:
		return LeaveRequestStatusApproved, nil
	case DecisionReject:
		return LeaveRequestStatusRejected, nil
	}
	return "", ErrInvalidDecision
}

// Action is something an actor may do to an existing request.
type Action string

const (
	ActionDecide Action = "decide"
	ActionReply  Action = "reply"
)

// DateLayout is the wire format of start and end dates
const DateLayout = "2006-01-02"

// DefaultTotalDays is the yearly allotment a ledger starts with
const DefaultTotalDays = 25

// LeaveRequest entity
type LeaveRequest struct {
	ID            string
	RequesterID   string
	RequesterName string
	LeaveType     LeaveType

	StartDate time.Time
	EndDate   time.Time
	DayCount  int
	Reason    string

	Status      LeaveRequestStatus // 'pending', 'approved', 'rejected'
	SubmittedAt time.Time
	DecidedBy   *string
	DecidedAt   *time.Time

	// Relationships (for responses)
	Replies []Reply
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// BalanceYear is the ledger year an approval of this request is charged to
func (r LeaveRequest) BalanceYear() int {
	return r.StartDate.Year()
}

// Reply is an immutable comment in a request's thread
type Reply struct {
	ID             string
	LeaveRequestID string
	Message        string
	AuthorName     string
	CreatedAt      time.Time
}

// LeaveBalance is the per user, per year ledger
type LeaveBalance struct {
	UserID    string
	Year      int
	TotalDays int
	UsedDays  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingDays is derived and may be negative: consumption is not capped.
func (b LeaveBalance) RemainingDays() int {
	return b.TotalDays - b.UsedDays
}
