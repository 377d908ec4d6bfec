package dashboard

// StatsResponse holds the company wide counters shown on the dashboard cards
type StatsResponse struct {
	TotalEmployees   int64  `json:"total_employees"`
	PendingLeaves    int64  `json:"pending_leaves"`
	ApprovedLeaves   int64  `json:"approved_leaves"`
	TotalDepartments int64  `json:"total_departments"`
	UpdatedAt        string `json:"updated_at"`
}
