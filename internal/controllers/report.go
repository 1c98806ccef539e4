package controllers

import (
	"fmt"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetDashboardStats(ctx echo.Context) error {
	stats, err := c.reportService.GetDashboardStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Dashboard stats fetched successfully", http.StatusOK)
}

func (c *ReportController) GetCalendarEvents(ctx echo.Context) error {
	filter := dto.CalendarFilter{
		StartDate: optionalStringQuery(ctx, "start_date"),
		EndDate:   optionalStringQuery(ctx, "end_date"),
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	events, err := c.reportService.GetCalendarEvents(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, events, "Calendar events fetched successfully", http.StatusOK)
}

func (c *ReportController) GetMaintenanceByTeam(ctx echo.Context) error {
	rows, err := c.reportService.GetMaintenanceByTeam(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if isXLSX(ctx) {
		return c.respondWithXLSX(ctx, "maintenance_by_team", services.TeamReportSheet(rows))
	}
	return utils.SuccessResponse(ctx, rows, "Report fetched successfully", http.StatusOK)
}

func (c *ReportController) GetEquipmentStatus(ctx echo.Context) error {
	rows, err := c.reportService.GetEquipmentStatus(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if isXLSX(ctx) {
		return c.respondWithXLSX(ctx, "equipment_status", services.EquipmentStatusSheet(rows))
	}
	return utils.SuccessResponse(ctx, rows, "Report fetched successfully", http.StatusOK)
}

func (c *ReportController) GetTechnicianWorkload(ctx echo.Context) error {
	rows, err := c.reportService.GetTechnicianWorkload(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if isXLSX(ctx) {
		return c.respondWithXLSX(ctx, "technician_workload", services.TechnicianWorkloadSheet(rows))
	}
	return utils.SuccessResponse(ctx, rows, "Report fetched successfully", http.StatusOK)
}

func isXLSX(ctx echo.Context) bool {
	return ctx.QueryParam("format") == constants.ExportFormatXLSX
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, name string, sheet services.Sheet) error {
	f, err := services.BuildXLSX(sheet)
	if err != nil {
		c.logger.Error("respondWithXLSX: не удалось собрать файл", zap.String("report", name), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Could not build report file", err, nil), c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, constants.XLSXContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
