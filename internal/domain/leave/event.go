package leave

import "time"

// Names of the events pushed to a requester's live streams
const (
	EventLeaveDecided = "leave_request.decided"
	EventLeaveReplied = "leave_request.replied"
)

type DecidedEvent struct {
	LeaveRequestID string    `json:"leave_request_id"`
	Status         string    `json:"status"`
	DecidedBy      string    `json:"decided_by"`
	DecidedAt      time.Time `json:"decided_at"`
}

type RepliedEvent struct {
	LeaveRequestID string        `json:"leave_request_id"`
	Reply          ReplyResponse `json:"reply"`
}
