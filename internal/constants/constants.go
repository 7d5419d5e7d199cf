package constants

import "time"

type TaskStatus string

const (
	StatusScheduled  TaskStatus = "SCHEDULED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusCancelled  TaskStatus = "CANCELLED"
	StatusMissed     TaskStatus = "MISSED"
	StatusSkipped    TaskStatus = "SKIPPED"
)

var allStatuses = map[TaskStatus]struct{}{
	StatusScheduled:  {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusMissed:     {},
	StatusSkipped:    {},
}

func (s TaskStatus) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

var allPriorities = map[TaskPriority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
	PriorityUrgent: {},
}

func (p TaskPriority) Valid() bool {
	_, ok := allPriorities[p]
	return ok
}

// TemplateStatusActive is the only template status eligible for materialization.
const TemplateStatusActive = "ACTIVE"

var dayNames = [...]string{
	time.Sunday:    "SUNDAY",
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
}

// DayOfWeekName maps a Go weekday to the slot catalog's day name.
func DayOfWeekName(d time.Weekday) string {
	return dayNames[d]
}

const (
	// SystemActorID stamps audit fields on rows the materializer creates.
	SystemActorID = "system"

	// DefaultTeamID is assigned when a slot carries no resolvable team.
	DefaultTeamID = "unassigned"

	DefaultStartTime = "08:00"
	DefaultEndTime   = "17:00"
)
