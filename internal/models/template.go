package model

import (
	"time"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
)

// TaskTemplate is a reusable definition of a recurring task. The core only
// reads templates; the catalog is maintained elsewhere.
type TaskTemplate struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `json:"description"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status      string                 `gorm:"type:varchar(20);not null" json:"status"`
	IsDeleted   bool                   `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Eligible reports whether the template may be materialized.
func (t *TaskTemplate) Eligible() bool {
	return t.Status == constants.TemplateStatusActive && !t.IsDeleted
}
