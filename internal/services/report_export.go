package services

import (
	"fmt"

	"gearguard/internal/dto"

	"github.com/xuri/excelize/v2"
)

// Sheet - таблица для выгрузки в Excel.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

func TeamReportSheet(rows []dto.TeamReportRowDTO) Sheet {
	sheet := Sheet{
		Name:    "Maintenance by team",
		Headers: []string{"Team ID", "Team", "Total", "New", "In progress", "Repaired", "Scrap"},
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []interface{}{r.ID, r.Name, r.TotalRequests, r.NewRequests, r.InProgress, r.Completed, r.Scrapped})
	}
	return sheet
}

func EquipmentStatusSheet(rows []dto.EquipmentStatusRowDTO) Sheet {
	sheet := Sheet{
		Name:    "Equipment status",
		Headers: []string{"Category", "Total", "Active", "Scrapped", "Warranty expired"},
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []interface{}{r.Category, r.Total, r.Active, r.Scrapped, r.WarrantyExpired})
	}
	return sheet
}

func TechnicianWorkloadSheet(rows []dto.TechnicianWorkloadRowDTO) Sheet {
	sheet := Sheet{
		Name:    "Technician workload",
		Headers: []string{"Technician ID", "Name", "Email", "Assigned", "Active", "Completed"},
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []interface{}{r.ID, r.Name, r.Email, r.TotalAssigned, r.ActiveTasks, r.CompletedTasks})
	}
	return sheet
}

// BuildXLSX собирает книгу с одним листом: жирная шапка, данные со второй строки.
func BuildXLSX(sheet Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &sheet.Headers); err != nil {
		return nil, err
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
	if err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastHeader, style); err != nil {
		return nil, err
	}

	for i := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &sheet.Rows[i]); err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+1, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(sheet.Headers))
	_ = f.SetColWidth(sheet.Name, "A", lastCol, 18)
	return f, nil
}
