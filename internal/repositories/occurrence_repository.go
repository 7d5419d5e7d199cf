package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

// OccurrenceRepository owns all access to the daily-task occurrence table.
// Every read filters out soft-deleted rows; nothing here hard-deletes.
type OccurrenceRepository struct {
	db *gorm.DB
}

func NewOccurrenceRepository(db *gorm.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

// ListFilter narrows occurrence queries. Zero values mean "no filter".
type ListFilter struct {
	Status     constants.TaskStatus
	TeamID     string
	TemplateID string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (r *OccurrenceRepository) Insert(ctx context.Context, occ *model.DailyTaskOccurrence) error {
	if err := r.db.WithContext(ctx).Create(occ).Error; err != nil {
		return fmt.Errorf("insert occurrence: %w", err)
	}
	return nil
}

func (r *OccurrenceRepository) FindByID(ctx context.Context, id string) (*model.DailyTaskOccurrence, error) {
	var occ model.DailyTaskOccurrence
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&occ).Error
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

// ExistsForSlot reports whether a non-deleted occurrence already holds the
// (assigned_date, slot_id, template_id) dedup key.
func (r *OccurrenceRepository) ExistsForSlot(ctx context.Context, date time.Time, slotID, templateID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("assigned_date = ? AND slot_id = ? AND template_id = ? AND is_deleted = ?",
			dates.Normalize(date), slotID, templateID, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("dedup lookup: %w", err)
	}
	return count > 0, nil
}

// QueryRange returns non-deleted occurrences in the inclusive date range,
// oldest assigned date first. Team and status filters are optional.
func (r *OccurrenceRepository) QueryRange(ctx context.Context, start, end time.Time, teamID string, status constants.TaskStatus) ([]model.DailyTaskOccurrence, error) {
	query := r.db.WithContext(ctx).
		Where("assigned_date >= ? AND assigned_date <= ? AND is_deleted = ?",
			dates.Normalize(start), dates.Normalize(end), false)
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var occs []model.DailyTaskOccurrence
	if err := query.Order("assigned_date asc, start_time asc").Find(&occs).Error; err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	return occs, nil
}

// List returns one page of non-deleted occurrences, newest assigned date
// first, plus the total matching count.
func (r *OccurrenceRepository) List(ctx context.Context, filter ListFilter, pageIndex, pageSize int) ([]model.DailyTaskOccurrence, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Model(&model.DailyTaskOccurrence{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count occurrences: %w", err)
	}

	var occs []model.DailyTaskOccurrence
	err := query.
		Order("assigned_date desc, created_at desc").
		Offset(pageIndex * pageSize).
		Limit(pageSize).
		Find(&occs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list occurrences: %w", err)
	}
	return occs, total, nil
}

// ListAll returns every non-deleted occurrence matching the filter in
// insertion order. The duplicate scan and the template rollup use it.
func (r *OccurrenceRepository) ListAll(ctx context.Context, filter ListFilter) ([]model.DailyTaskOccurrence, error) {
	var occs []model.DailyTaskOccurrence
	err := r.filtered(ctx, filter).
		Order("created_at asc, id asc").
		Find(&occs).Error
	if err != nil {
		return nil, fmt.Errorf("list all occurrences: %w", err)
	}
	return occs, nil
}

// CountByStatus groups non-deleted occurrences in the optional range by
// status.
func (r *OccurrenceRepository) CountByStatus(ctx context.Context, start, end *time.Time) (map[constants.TaskStatus]int64, error) {
	query := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("is_deleted = ?", false)
	if start != nil {
		query = query.Where("assigned_date >= ?", dates.Normalize(*start))
	}
	if end != nil {
		query = query.Where("assigned_date <= ?", dates.Normalize(*end))
	}

	var rows []struct {
		Status constants.TaskStatus
		Count  int64
	}
	if err := query.Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	counts := make(map[constants.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Update persists a mutated occurrence.
func (r *OccurrenceRepository) Update(ctx context.Context, occ *model.DailyTaskOccurrence) error {
	res := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("id = ?", occ.ID).
		Updates(map[string]interface{}{
			"status":          occ.Status,
			"notes":           occ.Notes,
			"completion_date": occ.CompletionDate,
			"updated_at":      occ.UpdatedAt,
			"updated_by":      occ.UpdatedBy,
			"is_deleted":      occ.IsDeleted,
		})
	if res.Error != nil {
		return fmt.Errorf("update occurrence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks a single occurrence deleted.
func (r *OccurrenceRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
			"updated_by": deletedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("soft delete occurrence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteIDs marks a batch deleted and returns the rows affected.
func (r *OccurrenceRepository) SoftDeleteIDs(ctx context.Context, ids []string, deletedBy string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
			"updated_by": deletedBy,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("soft delete batch: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SoftDeletePastScheduled marks every SCHEDULED occurrence dated strictly
// before the given day as deleted.
func (r *OccurrenceRepository) SoftDeletePastScheduled(ctx context.Context, before time.Time, deletedBy string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("status = ? AND assigned_date < ? AND is_deleted = ?",
			constants.StatusScheduled, dates.Normalize(before), false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
			"updated_by": deletedBy,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("soft delete past scheduled: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SoftDeleteScheduledBySlot marks every still-SCHEDULED occurrence bound to
// the slot as deleted. Called when a slot's weekly pattern changes.
func (r *OccurrenceRepository) SoftDeleteScheduledBySlot(ctx context.Context, slotID, deletedBy string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DailyTaskOccurrence{}).
		Where("slot_id = ? AND status = ? AND is_deleted = ?",
			slotID, constants.StatusScheduled, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
			"updated_by": deletedBy,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("soft delete by slot: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *OccurrenceRepository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.DailyTaskOccurrence{}).
		Where("is_deleted = ?", false)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.TemplateID != "" {
		query = query.Where("template_id = ?", filter.TemplateID)
	}
	if filter.StartDate != nil {
		query = query.Where("assigned_date >= ?", dates.Normalize(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("assigned_date <= ?", dates.Normalize(*filter.EndDate))
	}
	return query
}
