package model

import (
	"time"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
)

// DailyTaskOccurrence is one dated instance of a task, either materialized
// from a weekly slot or created manually (TemplateID and SlotID both nil).
type DailyTaskOccurrence struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	TemplateID *string `gorm:"size:36;index:idx_occurrence_dedup" json:"template_id"`
	SlotID     *string `gorm:"size:36;index:idx_occurrence_dedup" json:"slot_id"`
	TeamID     string  `gorm:"size:36;not null;index" json:"team_id"`

	// AssignedDate is normalized to midnight UTC; comparisons are done on
	// calendar components only.
	AssignedDate time.Time `gorm:"type:date;not null;index:idx_occurrence_dedup" json:"assigned_date"`
	StartTime    string    `gorm:"size:5;not null" json:"start_time"`
	EndTime      string    `gorm:"size:5;not null" json:"end_time"`

	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `json:"description"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`

	Status constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	// CompletionDate records the moment the occurrence last reached
	// COMPLETED. Later transitions away from COMPLETED do not clear it.
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `gorm:"size:36;not null" json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `gorm:"size:36;not null" json:"updated_by"`

	// Soft delete. Deleted rows are excluded from every query and
	// statistic but kept as history, so this is a plain flag rather than
	// a gorm DeletedAt.
	IsDeleted bool `gorm:"not null;default:false;index" json:"is_deleted"`
}

// Recurring reports whether the occurrence was materialized from a slot.
func (o *DailyTaskOccurrence) Recurring() bool {
	return o.SlotID != nil && o.TemplateID != nil
}
