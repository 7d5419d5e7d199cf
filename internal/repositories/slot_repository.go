package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

// SlotRepository is the read side of the weekly-slot catalog.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) FindByID(ctx context.Context, id string) (*model.WeeklySlot, error) {
	var slot model.WeeklySlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListActiveByDay returns non-deleted slots recurring on the given day name.
func (r *SlotRepository) ListActiveByDay(ctx context.Context, dayOfWeek string) ([]model.WeeklySlot, error) {
	var slots []model.WeeklySlot
	err := r.db.WithContext(ctx).
		Where("day_of_week = ? AND is_deleted = ?", dayOfWeek, false).
		Order("start_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("list slots for %s: %w", dayOfWeek, err)
	}
	return slots, nil
}
