package model

import "time"

// WeeklySlot binds a template to a weekly cadence: a day of week, a time
// window, and the team that owns the work.
type WeeklySlot struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TeamID    string    `gorm:"size:36;index" json:"team_id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"task_id"`
	DayOfWeek string    `gorm:"type:varchar(10);not null;index" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
