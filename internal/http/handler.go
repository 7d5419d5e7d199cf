package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cafe-ops-system.com/cafe-ops-system/internal/constants"
	dto "cafe-ops-system.com/cafe-ops-system/internal/data_models"
	"cafe-ops-system.com/cafe-ops-system/internal/dates"
	apperrors "cafe-ops-system.com/cafe-ops-system/internal/errors"
	"cafe-ops-system.com/cafe-ops-system/internal/http/validators"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
	"cafe-ops-system.com/cafe-ops-system/internal/services"
)

type Handler struct {
	materializer *services.MaterializerService
	lifecycle    *services.LifecycleService
	reports      *services.ReportService
	maintenance  *services.MaintenanceService
}

func NewHandler(
	materializer *services.MaterializerService,
	lifecycle *services.LifecycleService,
	reports *services.ReportService,
	maintenance *services.MaintenanceService,
) *Handler {
	return &Handler{
		materializer: materializer,
		lifecycle:    lifecycle,
		reports:      reports,
		maintenance:  maintenance,
	}
}

func (h *Handler) Reconcile(c echo.Context) error {
	var req dto.ReconcileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateReconcileRequest(&req); err != nil {
		return err
	}

	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return asHTTPError(apperrors.ErrInvalidDate)
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return asHTTPError(apperrors.ErrInvalidDate)
	}

	occurrences, err := h.materializer.Reconcile(c.Request().Context(), start, end, services.ReconcileFilter{
		TeamID: req.TeamID,
		Status: constants.TaskStatus(req.Status),
	})
	if err != nil {
		return asHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(occurrences),
		"daily_tasks": occurrences,
	})
}

func (h *Handler) ListDailyTasks(c echo.Context) error {
	filter := repository.ListFilter{
		Status:     constants.TaskStatus(c.QueryParam("status")),
		TeamID:     c.QueryParam("team_id"),
		TemplateID: c.QueryParam("template_id"),
	}

	if raw := c.QueryParam("start_date"); raw != "" {
		start, err := dates.Parse(raw)
		if err != nil {
			return asHTTPError(apperrors.ErrInvalidDate)
		}
		filter.StartDate = &start
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		end, err := dates.Parse(raw)
		if err != nil {
			return asHTTPError(apperrors.ErrInvalidDate)
		}
		filter.EndDate = &end
	}

	pageIndex := queryInt(c, "page_index", 0)
	pageSize := queryInt(c, "page_size", 20)

	page, err := h.reports.List(c.Request().Context(), filter, pageIndex, pageSize)
	if err != nil {
		return asHTTPError(err)
	}

	return c.JSON(http.StatusOK, page)
}

func (h *Handler) CreateDailyTask(c echo.Context) error {
	var req dto.CreateDailyTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateDailyTaskRequest(&req); err != nil {
		return err
	}

	assignedDate, err := dates.Parse(req.AssignedDate)
	if err != nil {
		return asHTTPError(apperrors.ErrInvalidDate)
	}

	occ, err := h.lifecycle.CreateManual(c.Request().Context(), services.ManualTaskInput{
		TeamID:       req.TeamID,
		Title:        req.Title,
		Description:  req.Description,
		AssignedDate: assignedDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Priority:     constants.TaskPriority(req.Priority),
		Status:       constants.TaskStatus(req.Status),
		TemplateID:   req.TaskID,
		SlotID:       req.SlotID,
		CreatedBy:    req.CreatedBy,
	})
	if err != nil {
		return asHTTPError(err)
	}

	return c.JSON(http.StatusCreated, occ)
}

func (h *Handler) GetDailyTask(c echo.Context) error {
	occ, err := h.lifecycle.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, occ)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateStatusRequest(&req); err != nil {
		return err
	}

	occ, err := h.lifecycle.UpdateStatus(c.Request().Context(), c.Param("id"), services.StatusPatch{
		Status:    constants.TaskStatus(req.Status),
		Notes:     req.Notes,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		return asHTTPError(err)
	}

	return c.JSON(http.StatusOK, occ)
}

func (h *Handler) DeleteDailyTask(c echo.Context) error {
	if err := h.lifecycle.Delete(c.Request().Context(), c.Param("id"), c.QueryParam("deleted_by")); err != nil {
		return asHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Statistics(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return asHTTPError(err)
	}

	stats, err := h.reports.Statistics(c.Request().Context(), start, end)
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) SummaryByTemplate(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return asHTTPError(err)
	}

	summaries, err := h.reports.SummaryByTemplate(c.Request().Context(), start, end)
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":     len(summaries),
		"summaries": summaries,
	})
}

func (h *Handler) RemoveDuplicates(c echo.Context) error {
	removed, err := h.maintenance.RemoveDuplicates(c.Request().Context())
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func (h *Handler) RemovePastScheduled(c echo.Context) error {
	removed, err := h.maintenance.RemovePastScheduled(c.Request().Context())
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func (h *Handler) InvalidateSlot(c echo.Context) error {
	removed, err := h.maintenance.InvalidateSlot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func asHTTPError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func queryInt(c echo.Context, name string, defaultVal int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return v
}

func rangeParams(c echo.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if raw := c.QueryParam("start_date"); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			return nil, nil, apperrors.ErrInvalidDate
		}
		start = &t
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			return nil, nil, apperrors.ErrInvalidDate
		}
		end = &t
	}
	return start, end, nil
}
