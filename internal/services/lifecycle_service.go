package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

// LifecycleService drives individual occurrences through their status
// lifecycle and handles ad-hoc creation.
type LifecycleService struct {
	occurrences *repository.OccurrenceRepository
}

func NewLifecycleService(occurrences *repository.OccurrenceRepository) *LifecycleService {
	return &LifecycleService{occurrences: occurrences}
}

// StatusPatch is a partial update: empty fields leave prior values.
type StatusPatch struct {
	Status    constants.TaskStatus
	Notes     string
	UpdatedBy string
}

// ManualTaskInput describes an ad-hoc occurrence. TeamID, Title and
// AssignedDate are required; everything else has defaults.
type ManualTaskInput struct {
	TeamID       string
	Title        string
	Description  string
	AssignedDate time.Time
	StartTime    string
	EndTime      string
	Priority     constants.TaskPriority
	Status       constants.TaskStatus
	TemplateID   *string
	SlotID       *string
	CreatedBy    string
}

// UpdateStatus applies a status/notes patch. Any of the six statuses may
// follow any other; there is deliberately no transition table. The
// completion date is stamped on each transition to COMPLETED and never
// cleared afterwards.
func (s *LifecycleService) UpdateStatus(ctx context.Context, id string, patch StatusPatch) (*model.DailyTaskOccurrence, error) {
	occ, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != "" {
		if !patch.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		occ.Status = patch.Status
		if patch.Status == constants.StatusCompleted {
			now := time.Now().UTC()
			occ.CompletionDate = &now
		}
	}

	if patch.Notes != "" {
		occ.Notes = patch.Notes
	}

	occ.UpdatedAt = time.Now().UTC()
	occ.UpdatedBy = actorOrSystem(patch.UpdatedBy)

	if err := s.occurrences.Update(ctx, occ); err != nil {
		return nil, err
	}
	return occ, nil
}

// CreateManual inserts an ad-hoc occurrence. The optional template/slot
// provenance is stored as given; it is not validated against the catalogs.
func (s *LifecycleService) CreateManual(ctx context.Context, input ManualTaskInput) (*model.DailyTaskOccurrence, error) {
	if input.TeamID == "" {
		return nil, apperrors.Validation("team_id")
	}
	if input.Title == "" {
		return nil, apperrors.Validation("title")
	}
	if input.AssignedDate.IsZero() {
		return nil, apperrors.Validation("assigned_date")
	}

	priority := input.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	status := input.Status
	if status == "" {
		status = constants.StatusScheduled
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	startTime := input.StartTime
	if startTime == "" {
		startTime = constants.DefaultStartTime
	}
	endTime := input.EndTime
	if endTime == "" {
		endTime = constants.DefaultEndTime
	}

	now := time.Now().UTC()
	occ := &model.DailyTaskOccurrence{
		ID:           uuid.NewString(),
		TemplateID:   input.TemplateID,
		SlotID:       input.SlotID,
		TeamID:       input.TeamID,
		AssignedDate: dates.Normalize(input.AssignedDate),
		StartTime:    startTime,
		EndTime:      endTime,
		Title:        input.Title,
		Description:  input.Description,
		Priority:     priority,
		Status:       status,
		CreatedAt:    now,
		CreatedBy:    actorOrSystem(input.CreatedBy),
		UpdatedAt:    now,
		UpdatedBy:    actorOrSystem(input.CreatedBy),
	}

	// A task created directly in COMPLETED state is complete now.
	if status == constants.StatusCompleted {
		occ.CompletionDate = &now
	}

	if err := s.occurrences.Insert(ctx, occ); err != nil {
		return nil, err
	}
	return occ, nil
}

// Get returns a single non-deleted occurrence.
func (s *LifecycleService) Get(ctx context.Context, id string) (*model.DailyTaskOccurrence, error) {
	return s.findExisting(ctx, id)
}

// Delete soft-deletes one occurrence; history is retained.
func (s *LifecycleService) Delete(ctx context.Context, id, deletedBy string) error {
	if err := s.occurrences.SoftDelete(ctx, id, actorOrSystem(deletedBy)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOccurrenceNotFound
		}
		return err
	}
	return nil
}

func (s *LifecycleService) findExisting(ctx context.Context, id string) (*model.DailyTaskOccurrence, error) {
	occ, err := s.occurrences.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOccurrenceNotFound
		}
		return nil, err
	}
	return occ, nil
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return constants.SystemActorID
	}
	return actor
}
