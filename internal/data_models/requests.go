package dto

// ReconcileRequest asks for a date range to be materialized and returned.
// Dates are YYYY-MM-DD; team_id and status narrow the returned view only.
type ReconcileRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TeamID    string `json:"team_id"`
	Status    string `json:"status"`
}

// CreateDailyTaskRequest creates an ad-hoc occurrence.
type CreateDailyTaskRequest struct {
	TeamID       string  `json:"team_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	AssignedDate string  `json:"assigned_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	TaskID       *string `json:"task_id"`
	SlotID       *string `json:"slot_id"`
	CreatedBy    string  `json:"created_by"`
}

// UpdateStatusRequest patches an occurrence's status and/or notes.
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	UpdatedBy string `json:"updated_by"`
}
