package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "cafe-ops-system.com/cafe-ops-system/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/daily-tasks/reconcile", h.Reconcile)
	e.GET("/daily-tasks", h.ListDailyTasks)
	e.POST("/daily-tasks", h.CreateDailyTask)
	e.GET("/daily-tasks/statistics", h.Statistics)
	e.GET("/daily-tasks/summary", h.SummaryByTemplate)
	e.GET("/daily-tasks/:id", h.GetDailyTask)
	e.PATCH("/daily-tasks/:id/status", h.UpdateStatus)
	e.DELETE("/daily-tasks/:id", h.DeleteDailyTask)

	e.POST("/maintenance/duplicates", h.RemoveDuplicates)
	e.POST("/maintenance/past-scheduled", h.RemovePastScheduled)
	e.POST("/maintenance/slots/:id/invalidate", h.InvalidateSlot)
}
