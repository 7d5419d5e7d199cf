package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	"cafe-ops-system.com/cafe-ops-system/internal/lock"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

type testEnv struct {
	db           *gorm.DB
	occurrences  *repository.OccurrenceRepository
	materializer *MaterializerService
	lifecycle    *LifecycleService
	reports      *ReportService
	maintenance  *MaintenanceService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.TaskTemplate{},
		&model.WeeklySlot{},
		&model.Team{},
		&model.DailyTaskOccurrence{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	// The shared-cache memory db survives across opens in one process.
	for _, table := range []string{"daily_task_occurrences", "weekly_slots", "task_templates", "teams"} {
		db.Exec("DELETE FROM " + table)
	}

	occurrenceRepo := repository.NewOccurrenceRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	locker := lock.NewLocalLocker()

	return &testEnv{
		db:           db,
		occurrences:  occurrenceRepo,
		materializer: NewMaterializerService(occurrenceRepo, slotRepo, templateRepo, locker),
		lifecycle:    NewLifecycleService(occurrenceRepo),
		reports:      NewReportService(occurrenceRepo, teamRepo),
		maintenance:  NewMaintenanceService(occurrenceRepo, slotRepo, locker),
	}
}

func (e *testEnv) createTemplate(t *testing.T, id, status string) {
	t.Helper()
	tpl := model.TaskTemplate{
		ID:       id,
		Title:    "Morning feeding",
		Priority: constants.PriorityHigh,
		Status:   status,
	}
	if err := e.db.Create(&tpl).Error; err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
}

func (e *testEnv) createSlot(t *testing.T, id, taskID, teamID, dayOfWeek string) {
	t.Helper()
	slot := model.WeeklySlot{
		ID:        id,
		TeamID:    teamID,
		TaskID:    taskID,
		DayOfWeek: dayOfWeek,
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	if err := e.db.Create(&slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
}

func (e *testEnv) insertOccurrence(t *testing.T, occ *model.DailyTaskOccurrence) {
	t.Helper()
	if occ.Priority == "" {
		occ.Priority = constants.PriorityMedium
	}
	if occ.StartTime == "" {
		occ.StartTime = "09:00"
	}
	if occ.EndTime == "" {
		occ.EndTime = "10:00"
	}
	if occ.CreatedBy == "" {
		occ.CreatedBy = constants.SystemActorID
	}
	if occ.UpdatedBy == "" {
		occ.UpdatedBy = constants.SystemActorID
	}
	if err := e.occurrences.Insert(context.Background(), occ); err != nil {
		t.Fatalf("failed to insert occurrence: %v", err)
	}
}

// fetchOccurrence reads one row regardless of its deletion flag. A fresh
// dest struct per call keeps gorm from folding a previously populated
// primary key into the query conditions.
func (e *testEnv) fetchOccurrence(t *testing.T, id string) model.DailyTaskOccurrence {
	t.Helper()
	var occ model.DailyTaskOccurrence
	if err := e.db.First(&occ, "id = ?", id).Error; err != nil {
		t.Fatalf("lookup of %s failed: %v", id, err)
	}
	return occ
}

func (e *testEnv) countAll(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.DailyTaskOccurrence{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count occurrences: %v", err)
	}
	return count
}

func testOccurrence(id, teamID string, assignedDate time.Time, status constants.TaskStatus) *model.DailyTaskOccurrence {
	now := time.Now().UTC()
	return &model.DailyTaskOccurrence{
		ID:           id,
		TeamID:       teamID,
		AssignedDate: dates.Normalize(assignedDate),
		Title:        "Task " + id,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// nextWeekday returns the next strictly-future date falling on the weekday.
func nextWeekday(wd time.Weekday) time.Time {
	day := dates.Today().AddDate(0, 0, 1)
	for day.Weekday() != wd {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func strPtr(s string) *string {
	return &s
}
