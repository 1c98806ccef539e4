package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController) {
	api.GET("/dashboard/stats", ctrl.GetDashboardStats)
	api.GET("/calendar/events", ctrl.GetCalendarEvents)

	reports := api.Group("/reports")
	reports.GET("/maintenance-by-team", ctrl.GetMaintenanceByTeam)
	reports.GET("/equipment-status", ctrl.GetEquipmentStatus)
	reports.GET("/technician-workload", ctrl.GetTechnicianWorkload)
}
