package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type demoTeam struct {
	name        string
	description string
	equipment   []demoEquipment
}

type demoEquipment struct {
	name     string
	serial   string
	category string
	location string
}

var demoTeams = []demoTeam{
	{
		name:        "Mechanics",
		description: "Станки и производственное оборудование",
		equipment: []demoEquipment{
			{"CNC Machine 01", "CNC-0001", "Machinery", "Workshop A"},
			{"Hydraulic Press", "HP-0002", "Machinery", "Workshop B"},
		},
	},
	{
		name:        "IT Support",
		description: "Компьютеры, принтеры и сеть",
		equipment: []demoEquipment{
			{"Office Printer", "PRN-0101", "Printers", "Floor 2"},
			{"Core Switch", "NET-0201", "Network", "Server room"},
		},
	},
}

// SeedDemoData наполняет справочники командами и оборудованием. Существующие записи пропускаются.
func SeedDemoData(ctx context.Context, teams repositories.TeamRepositoryInterface, equipment repositories.EquipmentRepositoryInterface) error {
	for _, t := range demoTeams {
		teamID, err := teams.CreateTeam(ctx, &entities.MaintenanceTeam{Name: t.name, Description: utils.ToPtr(t.description)})
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				log.Printf("  - Команда %q уже существует. Пропускаем.", t.name)
				continue
			}
			return fmt.Errorf("не удалось создать команду %q: %w", t.name, err)
		}
		log.Printf("  - Команда %q создана (id=%d)", t.name, teamID)

		for _, e := range t.equipment {
			_, err := equipment.CreateEquipment(ctx, &entities.Equipment{
				Name:              e.name,
				SerialNumber:      e.serial,
				Category:          utils.ToPtr(e.category),
				Location:          utils.ToPtr(e.location),
				MaintenanceTeamID: utils.ToPtr(teamID),
			})
			if err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					continue
				}
				return fmt.Errorf("не удалось создать оборудование %q: %w", e.serial, err)
			}
		}
	}
	return nil
}
