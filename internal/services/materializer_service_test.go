package services

import (
	"context"
	"testing"
	"time"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
)

func TestMaterializer_SingleMondaySlot(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")

	monday := nextWeekday(time.Monday)

	occs, err := env.materializer.Reconcile(context.Background(), monday, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}

	occ := occs[0]
	if occ.Status != constants.StatusScheduled {
		t.Errorf("expected status %s, got %s", constants.StatusScheduled, occ.Status)
	}
	if occ.TemplateID == nil || *occ.TemplateID != "T1" {
		t.Errorf("expected template T1, got %v", occ.TemplateID)
	}
	if occ.SlotID == nil || *occ.SlotID != "S1" {
		t.Errorf("expected slot S1, got %v", occ.SlotID)
	}
	if occ.TeamID != "team-1" {
		t.Errorf("expected team team-1, got %s", occ.TeamID)
	}
	if occ.Title != "Morning feeding" {
		t.Errorf("expected title copied from template, got %q", occ.Title)
	}
	if !dates.SameDay(occ.AssignedDate, monday) {
		t.Errorf("expected assigned date %s, got %s", dates.Format(monday), dates.Format(occ.AssignedDate))
	}
	if occ.CreatedBy != constants.SystemActorID {
		t.Errorf("expected system audit actor, got %s", occ.CreatedBy)
	}
}

func TestMaterializer_Idempotent(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")

	monday := nextWeekday(time.Monday)
	ctx := context.Background()

	first, err := env.materializer.Reconcile(ctx, monday, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	second, err := env.materializer.Reconcile(ctx, monday, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected both calls to return 1 occurrence, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("second reconcile returned a different occurrence: %s vs %s", first[0].ID, second[0].ID)
	}
	if count := env.countAll(t); count != 1 {
		t.Errorf("expected store size 1 after double reconcile, got %d", count)
	}
}

func TestMaterializer_NoPastBackfill(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)

	yesterday := dates.Today().AddDate(0, 0, -1)
	env.createSlot(t, "S1", "T1", "team-1", constants.DayOfWeekName(yesterday.Weekday()))

	occs, err := env.materializer.Reconcile(context.Background(), yesterday, yesterday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(occs) != 0 {
		t.Errorf("expected no occurrences for a past date, got %d", len(occs))
	}
	if count := env.countAll(t); count != 0 {
		t.Errorf("expected empty store, got %d rows", count)
	}
}

func TestMaterializer_PastRowsStillReturned(t *testing.T) {
	env := setupTestEnv(t)

	yesterday := dates.Today().AddDate(0, 0, -1)
	env.insertOccurrence(t, testOccurrence("existing", "team-1", yesterday, constants.StatusCompleted))

	occs, err := env.materializer.Reconcile(context.Background(), yesterday, dates.Today(), ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(occs) != 1 || occs[0].ID != "existing" {
		t.Fatalf("expected the pre-existing past occurrence in the result, got %d rows", len(occs))
	}
}

func TestMaterializer_SkipsIneligibleTemplate(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", "INACTIVE")
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")
	// Slot bound to nothing that exists.
	env.createSlot(t, "S2", "T-missing", "team-1", "MONDAY")

	monday := nextWeekday(time.Monday)

	occs, err := env.materializer.Reconcile(context.Background(), monday, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected ineligible templates to be skipped, got %d occurrences", len(occs))
	}
}

func TestMaterializer_ReversedRangeTolerated(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")

	monday := nextWeekday(time.Monday)
	end := monday.AddDate(0, 0, 6)

	occs, err := env.materializer.Reconcile(context.Background(), end, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(occs) != 1 {
		t.Errorf("expected 1 occurrence in reversed range, got %d", len(occs))
	}
}

func TestMaterializer_DefaultTeamFallback(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "", "MONDAY")

	monday := nextWeekday(time.Monday)

	occs, err := env.materializer.Reconcile(context.Background(), monday, monday, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if occs[0].TeamID != constants.DefaultTeamID {
		t.Errorf("expected fallback team %q, got %q", constants.DefaultTeamID, occs[0].TeamID)
	}
}

func TestMaterializer_FilterNarrowsViewOnly(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")
	env.createSlot(t, "S2", "T1", "team-2", "MONDAY")

	monday := nextWeekday(time.Monday)

	occs, err := env.materializer.Reconcile(context.Background(), monday, monday, ReconcileFilter{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(occs) != 1 {
		t.Errorf("expected filtered view with 1 occurrence, got %d", len(occs))
	}
	// Both slots were still materialized.
	if count := env.countAll(t); count != 2 {
		t.Errorf("expected 2 materialized rows, got %d", count)
	}
}

func TestMaterializer_WeekRangeSorted(t *testing.T) {
	env := setupTestEnv(t)
	env.createTemplate(t, "T1", constants.TemplateStatusActive)
	env.createSlot(t, "S1", "T1", "team-1", "MONDAY")
	env.createSlot(t, "S2", "T1", "team-1", "WEDNESDAY")

	monday := nextWeekday(time.Monday)
	end := monday.AddDate(0, 0, 6)

	occs, err := env.materializer.Reconcile(context.Background(), monday, end, ReconcileFilter{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences over the week, got %d", len(occs))
	}
	if occs[0].AssignedDate.After(occs[1].AssignedDate) {
		t.Errorf("expected ascending assigned dates, got %s before %s",
			dates.Format(occs[0].AssignedDate), dates.Format(occs[1].AssignedDate))
	}
}
