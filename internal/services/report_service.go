package services

import (
	"context"
	"math"
	"time"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	model "cafe-ops-system.com/cafe-ops-system/internal/models"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
)

// ManualTemplateKey groups ad-hoc occurrences in the per-template rollup,
// since they carry no template provenance.
const ManualTemplateKey = "manual"

// ReportService is the read-only side: pagination, statistics, rollups.
// Teams are resolved at read time for display; a missing team yields nil.
type ReportService struct {
	occurrences *repository.OccurrenceRepository
	teams       *repository.TeamRepository
}

func NewReportService(occurrences *repository.OccurrenceRepository, teams *repository.TeamRepository) *ReportService {
	return &ReportService{occurrences: occurrences, teams: teams}
}

// Page is one page of occurrences plus paging math.
type Page struct {
	Items         []OccurrenceView `json:"items"`
	PageIndex     int              `json:"page_index"`
	PageSize      int              `json:"page_size"`
	TotalElements int64            `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
	HasNext       bool             `json:"has_next"`
	HasPrevious   bool             `json:"has_previous"`
}

// OccurrenceView is an occurrence enriched with its team for display.
type OccurrenceView struct {
	model.DailyTaskOccurrence
	Team *model.Team `json:"team,omitempty"`
}

// Statistics aggregates a date range by status.
type Statistics struct {
	Total          int64 `json:"total"`
	Scheduled      int64 `json:"scheduled"`
	InProgress     int64 `json:"in_progress"`
	Completed      int64 `json:"completed"`
	Cancelled      int64 `json:"cancelled"`
	Missed         int64 `json:"missed"`
	Skipped        int64 `json:"skipped"`
	CompletionRate int   `json:"completion_rate"`
}

// TemplateSummary is the per-template rollup for a date range.
type TemplateSummary struct {
	TemplateID     string                         `json:"template_id"`
	Title          string                         `json:"title"`
	Total          int64                          `json:"total"`
	ByStatus       map[constants.TaskStatus]int64 `json:"by_status"`
	CompletionRate int                            `json:"completion_rate"`
}

// List returns one page of non-deleted occurrences, newest first.
func (s *ReportService) List(ctx context.Context, filter repository.ListFilter, pageIndex, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		return nil, apperrors.ErrInvalidPage
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	occs, total, err := s.occurrences.List(ctx, filter, pageIndex, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	return &Page{
		Items:         s.enrich(ctx, occs),
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       pageIndex < totalPages-1,
		HasPrevious:   pageIndex > 0,
	}, nil
}

// Statistics counts non-deleted occurrences per status over an optional
// range. The completion rate is 0 when the range is empty.
func (s *ReportService) Statistics(ctx context.Context, start, end *time.Time) (*Statistics, error) {
	counts, err := s.occurrences.CountByStatus(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		Scheduled:  counts[constants.StatusScheduled],
		InProgress: counts[constants.StatusInProgress],
		Completed:  counts[constants.StatusCompleted],
		Cancelled:  counts[constants.StatusCancelled],
		Missed:     counts[constants.StatusMissed],
		Skipped:    counts[constants.StatusSkipped],
	}
	stats.Total = stats.Scheduled + stats.InProgress + stats.Completed +
		stats.Cancelled + stats.Missed + stats.Skipped
	stats.CompletionRate = completionRate(stats.Completed, stats.Total)

	return stats, nil
}

// SummaryByTemplate groups non-deleted occurrences in the range by source
// template, labelled with the first-seen title. Ad-hoc occurrences fall
// under ManualTemplateKey.
func (s *ReportService) SummaryByTemplate(ctx context.Context, start, end *time.Time) ([]TemplateSummary, error) {
	occs, err := s.occurrences.ListAll(ctx, repository.ListFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	byTemplate := make(map[string]*TemplateSummary)
	order := make([]string, 0)

	for _, occ := range occs {
		key := ManualTemplateKey
		if occ.TemplateID != nil {
			key = *occ.TemplateID
		}

		summary, ok := byTemplate[key]
		if !ok {
			summary = &TemplateSummary{
				TemplateID: key,
				Title:      occ.Title,
				ByStatus:   make(map[constants.TaskStatus]int64),
			}
			byTemplate[key] = summary
			order = append(order, key)
		}

		summary.Total++
		summary.ByStatus[occ.Status]++
	}

	summaries := make([]TemplateSummary, 0, len(order))
	for _, key := range order {
		summary := byTemplate[key]
		summary.CompletionRate = completionRate(summary.ByStatus[constants.StatusCompleted], summary.Total)
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *ReportService) enrich(ctx context.Context, occs []model.DailyTaskOccurrence) []OccurrenceView {
	teams := make(map[string]*model.Team)
	views := make([]OccurrenceView, 0, len(occs))

	for _, occ := range occs {
		team, ok := teams[occ.TeamID]
		if !ok {
			// Best-effort enrichment: a missing team renders as null.
			team, _ = s.teams.FindByID(ctx, occ.TeamID)
			teams[occ.TeamID] = team
		}
		views = append(views, OccurrenceView{DailyTaskOccurrence: occ, Team: team})
	}
	return views
}

func completionRate(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
