package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "cafe-ops-system.com/cafe-ops-system/internal/data_models"
)

func ValidateReconcileRequest(r *dto.ReconcileRequest) error {
	if r.StartDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date is required")
	}
	if r.EndDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date is required")
	}
	return nil
}

func ValidateCreateDailyTaskRequest(r *dto.CreateDailyTaskRequest) error {
	if r.TeamID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "team_id is required")
	}
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.AssignedDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "assigned_date is required")
	}
	return nil
}

func ValidateUpdateStatusRequest(r *dto.UpdateStatusRequest) error {
	if r.Status == "" && r.Notes == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status or notes is required")
	}
	return nil
}
