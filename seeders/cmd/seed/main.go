package main

import (
	"context"
	"flag"
	"log"

	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "Создать администратора из SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD")
	runDemo := flag.Bool("demo", false, "Наполнить демо-командами и оборудованием")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("Не выбран ни один сидер. Доступные флаги:")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	ctx := context.Background()

	if *runAll || *runAdmin {
		log.Println("Сидер: администратор")
		if err := seeders.SeedAdmin(ctx, repositories.NewUserRepository(dbPool), cfg.Seed); err != nil {
			log.Fatalf("Ошибка сидера администратора: %v", err)
		}
	}

	if *runAll || *runDemo {
		log.Println("Сидер: демо-данные")
		err := seeders.SeedDemoData(ctx, repositories.NewTeamRepository(dbPool), repositories.NewEquipmentRepository(dbPool))
		if err != nil {
			log.Fatalf("Ошибка сидера демо-данных: %v", err)
		}
	}

	log.Println("Сидеры выполнены")
}
