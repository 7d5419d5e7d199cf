package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	"cafe-ops-system.com/cafe-ops-system/internal/lock"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

// MaintenanceService runs the idempotent housekeeping jobs. Jobs only run
// when invoked; there is no background timer here.
type MaintenanceService struct {
	occurrences *repository.OccurrenceRepository
	slots       *repository.SlotRepository
	locker      lock.ReconcileLocker
}

func NewMaintenanceService(occurrences *repository.OccurrenceRepository, slots *repository.SlotRepository, locker lock.ReconcileLocker) *MaintenanceService {
	return &MaintenanceService{occurrences: occurrences, slots: slots, locker: locker}
}

// RemoveDuplicates soft-deletes every non-deleted recurring occurrence
// whose (assigned_date, slot_id, template_id) key was already seen on an
// earlier row. The first-seen row wins. Ad-hoc occurrences carry no key
// and are never touched. Returns the number of rows removed.
func (s *MaintenanceService) RemoveDuplicates(ctx context.Context) (int64, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.locker.Release(ctx)

	occs, err := s.occurrences.ListAll(ctx, repository.ListFilter{})
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{})
	var duplicates []string

	for _, occ := range occs {
		if !occ.Recurring() {
			continue
		}
		key := fmt.Sprintf("%s|%s|%s", dates.Format(occ.AssignedDate), *occ.SlotID, *occ.TemplateID)
		if _, dup := seen[key]; dup {
			duplicates = append(duplicates, occ.ID)
			continue
		}
		seen[key] = struct{}{}
	}

	removed, err := s.occurrences.SoftDeleteIDs(ctx, duplicates, constants.SystemActorID)
	if err != nil {
		return 0, err
	}

	log.Printf("maintenance: removed %d duplicate occurrences", removed)
	return removed, nil
}

// RemovePastScheduled soft-deletes occurrences that are still SCHEDULED on
// a past date. Past COMPLETED, CANCELLED, MISSED or SKIPPED rows are valid
// history and stay. Returns the number of rows removed.
func (s *MaintenanceService) RemovePastScheduled(ctx context.Context) (int64, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.locker.Release(ctx)

	removed, err := s.occurrences.SoftDeletePastScheduled(ctx, dates.Today(), constants.SystemActorID)
	if err != nil {
		return 0, err
	}

	log.Printf("maintenance: removed %d stale scheduled occurrences", removed)
	return removed, nil
}

// InvalidateSlot soft-deletes the still-SCHEDULED occurrences of one slot.
// Call it when a slot's weekly pattern changes, so occurrences generated
// under the old day-of-week don't linger.
func (s *MaintenanceService) InvalidateSlot(ctx context.Context, slotID string) (int64, error) {
	if slotID == "" {
		return 0, apperrors.Validation("slot_id")
	}

	// The slot must exist in the catalog; soft-deleted slots still
	// qualify, since invalidation usually follows a slot edit or removal.
	if _, err := s.slots.FindByID(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrSlotNotFound
		}
		return 0, err
	}

	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.locker.Release(ctx)

	removed, err := s.occurrences.SoftDeleteScheduledBySlot(ctx, slotID, constants.SystemActorID)
	if err != nil {
		return 0, err
	}

	log.Printf("maintenance: invalidated %d occurrences for slot %s", removed, slotID)
	return removed, nil
}

func (s *MaintenanceService) acquire(ctx context.Context) error {
	if err := s.locker.Acquire(ctx); err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return apperrors.ErrLockUnavailable
		}
		return err
	}
	return nil
}
