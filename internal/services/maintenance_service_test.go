package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

func TestMaintenance_RemoveDuplicatesKeepsFirstSeen(t *testing.T) {
	env := setupTestEnv(t)
	day := dates.Today()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		occ := testOccurrence(fmt.Sprintf("dup-%d", i), "team-1", day, constants.StatusScheduled)
		occ.SlotID = strPtr("S1")
		occ.TemplateID = strPtr("T1")
		occ.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		env.insertOccurrence(t, occ)
	}
	// Different key, untouched.
	other := testOccurrence("other", "team-1", day, constants.StatusScheduled)
	other.SlotID = strPtr("S2")
	other.TemplateID = strPtr("T1")
	env.insertOccurrence(t, other)

	removed, err := env.maintenance.RemoveDuplicates(context.Background())
	if err != nil {
		t.Fatalf("remove duplicates failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 duplicates removed, got %d", removed)
	}

	remaining, err := env.occurrences.ListAll(context.Background(), repository.ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(remaining))
	}

	// The earliest-created row per key survives.
	for _, occ := range remaining {
		if occ.SlotID != nil && *occ.SlotID == "S1" && occ.ID != "dup-0" {
			t.Errorf("expected first-seen dup-0 to survive, got %s", occ.ID)
		}
	}

	// No two survivors share a dedup key.
	seen := make(map[string]bool)
	for _, occ := range remaining {
		key := fmt.Sprintf("%s|%s|%s", dates.Format(occ.AssignedDate), *occ.SlotID, *occ.TemplateID)
		if seen[key] {
			t.Errorf("duplicate key %s survived", key)
		}
		seen[key] = true
	}
}

func TestMaintenance_RemoveDuplicatesIgnoresManualTasks(t *testing.T) {
	env := setupTestEnv(t)
	day := dates.Today()

	// Two ad-hoc tasks on the same date are distinct work, not duplicates.
	env.insertOccurrence(t, testOccurrence("manual-1", "team-1", day, constants.StatusScheduled))
	env.insertOccurrence(t, testOccurrence("manual-2", "team-1", day, constants.StatusScheduled))

	removed, err := env.maintenance.RemoveDuplicates(context.Background())
	if err != nil {
		t.Fatalf("remove duplicates failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected manual tasks untouched, removed %d", removed)
	}
}

func TestMaintenance_RemovePastScheduled(t *testing.T) {
	env := setupTestEnv(t)
	yesterday := dates.Today().AddDate(0, 0, -1)

	env.insertOccurrence(t, testOccurrence("past-sched", "team-1", yesterday, constants.StatusScheduled))
	env.insertOccurrence(t, testOccurrence("past-done", "team-1", yesterday, constants.StatusCompleted))
	env.insertOccurrence(t, testOccurrence("today-sched", "team-1", dates.Today(), constants.StatusScheduled))

	removed, err := env.maintenance.RemovePastScheduled(context.Background())
	if err != nil {
		t.Fatalf("remove past scheduled failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 row removed, got %d", removed)
	}

	if !env.fetchOccurrence(t, "past-sched").IsDeleted {
		t.Error("expected past scheduled occurrence to be soft-deleted")
	}

	// Completed history and today's work stay.
	for _, id := range []string{"past-done", "today-sched"} {
		if env.fetchOccurrence(t, id).IsDeleted {
			t.Errorf("expected %s to be untouched", id)
		}
	}
}

func TestMaintenance_InvalidateSlot(t *testing.T) {
	env := setupTestEnv(t)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")
	tomorrow := dates.Today().AddDate(0, 0, 1)

	scheduled := testOccurrence("sched", "team-1", tomorrow, constants.StatusScheduled)
	scheduled.SlotID = strPtr("S1")
	scheduled.TemplateID = strPtr("T1")
	env.insertOccurrence(t, scheduled)

	done := testOccurrence("done", "team-1", tomorrow, constants.StatusCompleted)
	done.SlotID = strPtr("S1")
	done.TemplateID = strPtr("T1")
	env.insertOccurrence(t, done)

	otherSlot := testOccurrence("other-slot", "team-1", tomorrow, constants.StatusScheduled)
	otherSlot.SlotID = strPtr("S2")
	otherSlot.TemplateID = strPtr("T1")
	env.insertOccurrence(t, otherSlot)

	removed, err := env.maintenance.InvalidateSlot(context.Background(), "S1")
	if err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected only the scheduled S1 occurrence removed, got %d", removed)
	}

	if !env.fetchOccurrence(t, "sched").IsDeleted {
		t.Error("expected scheduled S1 occurrence soft-deleted")
	}
	if env.fetchOccurrence(t, "done").IsDeleted {
		t.Error("completed occurrence must survive slot invalidation")
	}
	if env.fetchOccurrence(t, "other-slot").IsDeleted {
		t.Error("other slot's occurrence must survive")
	}
}

func TestMaintenance_InvalidateSlotRequiresID(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.maintenance.InvalidateSlot(context.Background(), "")
	if err == nil {
		t.Fatal("expected a validation error for empty slot id")
	}
	if err.Error() != "slot_id is required" {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestMaintenance_InvalidateUnknownSlot(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.maintenance.InvalidateSlot(context.Background(), "no-such-slot")
	if !errors.Is(err, apperrors.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestMaintenance_JobsAreIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	yesterday := dates.Today().AddDate(0, 0, -1)
	env.insertOccurrence(t, testOccurrence("past-sched", "team-1", yesterday, constants.StatusScheduled))

	ctx := context.Background()
	if _, err := env.maintenance.RemovePastScheduled(ctx); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	removed, err := env.maintenance.RemovePastScheduled(ctx)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("second run should remove nothing, removed %d", removed)
	}
}
