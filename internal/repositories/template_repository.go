package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

// TemplateRepository is the read side of the template catalog.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*model.TaskTemplate, error) {
	var tpl model.TaskTemplate
	if err := r.db.WithContext(ctx).First(&tpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *TemplateRepository) ListActive(ctx context.Context) ([]model.TaskTemplate, error) {
	var tpls []model.TaskTemplate
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_deleted = ?", constants.TemplateStatusActive, false).
		Find(&tpls).Error
	if err != nil {
		return nil, fmt.Errorf("list active templates: %w", err)
	}
	return tpls, nil
}
