package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

// Fixture is the JSON shape the seed command loads: the read-only catalogs
// the materializer works from.
type Fixture struct {
	Teams     []model.Team         `json:"teams"`
	Templates []model.TaskTemplate `json:"task_templates"`
	Slots     []model.WeeklySlot   `json:"weekly_slots"`
}

// Load reads a fixture file and upserts its catalogs.
func Load(db *gorm.DB, path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	upsert := db.Clauses(clause.OnConflict{UpdateAll: true})
	if len(fixture.Teams) > 0 {
		if err := upsert.Create(&fixture.Teams).Error; err != nil {
			return nil, fmt.Errorf("seed teams: %w", err)
		}
	}
	if len(fixture.Templates) > 0 {
		if err := upsert.Create(&fixture.Templates).Error; err != nil {
			return nil, fmt.Errorf("seed templates: %w", err)
		}
	}
	if len(fixture.Slots) > 0 {
		if err := upsert.Create(&fixture.Slots).Error; err != nil {
			return nil, fmt.Errorf("seed slots: %w", err)
		}
	}

	return &fixture, nil
}
