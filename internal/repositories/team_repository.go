package repository

import (
	"context"

	"gorm.io/gorm"

	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

// TeamRepository looks up teams for display enrichment. A missing team is
// not an error for any caller.
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}
