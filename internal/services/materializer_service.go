package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	"cafe-ops-system.com/cafe-ops-system/internal/lock"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

// MaterializerService reconciles the occurrence store against the weekly
// slot catalog: for every date in a requested range it inserts the
// occurrences that should exist and do not yet.
type MaterializerService struct {
	occurrences *repository.OccurrenceRepository
	slots       *repository.SlotRepository
	templates   *repository.TemplateRepository
	locker      lock.ReconcileLocker
}

// ReconcileFilter narrows the returned view only; it never narrows what
// gets materialized.
type ReconcileFilter struct {
	TeamID string
	Status constants.TaskStatus
}

func NewMaterializerService(
	occurrences *repository.OccurrenceRepository,
	slots *repository.SlotRepository,
	templates *repository.TemplateRepository,
	locker lock.ReconcileLocker,
) *MaterializerService {
	return &MaterializerService{
		occurrences: occurrences,
		slots:       slots,
		templates:   templates,
		locker:      locker,
	}
}

// Reconcile materializes missing occurrences for the inclusive date range
// and returns the resulting range view sorted by assigned date. Calling it
// twice with an unchanged catalog inserts nothing the second time.
//
// Past dates are never back-filled: materialization starts at today, but
// pre-existing stored occurrences on past dates still appear in the result.
func (s *MaterializerService) Reconcile(ctx context.Context, start, end time.Time, filter ReconcileFilter) ([]model.DailyTaskOccurrence, error) {
	start, end = orderRange(start, end)

	if err := s.locker.Acquire(ctx); err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return nil, apperrors.ErrLockUnavailable
		}
		return nil, err
	}
	defer s.locker.Release(ctx)

	today := dates.Today()
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dates.Before(day, today) {
			continue
		}
		if err := s.materializeDay(ctx, day); err != nil {
			return nil, err
		}
	}

	return s.occurrences.QueryRange(ctx, start, end, filter.TeamID, filter.Status)
}

// materializeDay inserts missing occurrences for one date. Slots that
// cannot be materialized (retired template, broken binding) are logged and
// skipped; only store-level failures abort.
func (s *MaterializerService) materializeDay(ctx context.Context, day time.Time) error {
	dayName := constants.DayOfWeekName(day.Weekday())

	slots, err := s.slots.ListActiveByDay(ctx, dayName)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		template, ok := s.eligibleTemplate(ctx, slot)
		if !ok {
			continue
		}

		exists, err := s.occurrences.ExistsForSlot(ctx, day, slot.ID, template.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		occ := s.buildOccurrence(day, slot, template)
		if err := s.occurrences.Insert(ctx, occ); err != nil {
			return err
		}
	}

	return nil
}

func (s *MaterializerService) eligibleTemplate(ctx context.Context, slot model.WeeklySlot) (*model.TaskTemplate, bool) {
	template, err := s.templates.FindByID(ctx, slot.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("reconcile: slot %s references missing template %s, skipped", slot.ID, slot.TaskID)
			return nil, false
		}
		log.Printf("reconcile: template lookup for slot %s failed: %v", slot.ID, err)
		return nil, false
	}
	if !template.Eligible() {
		log.Printf("reconcile: template %s is not eligible (status %s), skipped", template.ID, template.Status)
		return nil, false
	}
	return template, true
}

func (s *MaterializerService) buildOccurrence(day time.Time, slot model.WeeklySlot, template *model.TaskTemplate) *model.DailyTaskOccurrence {
	teamID := slot.TeamID
	if teamID == "" {
		log.Printf("reconcile: slot %s has no team, assigning %q", slot.ID, constants.DefaultTeamID)
		teamID = constants.DefaultTeamID
	}

	slotID := slot.ID
	templateID := template.ID
	now := time.Now().UTC()

	return &model.DailyTaskOccurrence{
		ID:           uuid.NewString(),
		TemplateID:   &templateID,
		SlotID:       &slotID,
		TeamID:       teamID,
		AssignedDate: dates.Normalize(day),
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Title:        template.Title,
		Description:  template.Description,
		Priority:     template.Priority,
		Status:       constants.StatusScheduled,
		CreatedAt:    now,
		CreatedBy:    constants.SystemActorID,
		UpdatedAt:    now,
		UpdatedBy:    constants.SystemActorID,
	}
}

func orderRange(start, end time.Time) (time.Time, time.Time) {
	start, end = dates.Normalize(start), dates.Normalize(end)
	if start.After(end) {
		return end, start
	}
	return start, end
}
