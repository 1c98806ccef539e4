package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	applogger "gearguard/pkg/logger"
	"gearguard/pkg/migrate"

	"go.uber.org/zap"
)

func main() {
	cmd := flag.String("cmd", "up", "команда: up|down|status|redo|reset|version")
	version := flag.String("version", "", "целевая версия для -cmd=version")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx := context.Background()
	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	db := migrate.OpenDB(pool)
	defer db.Close()

	var err error
	switch *cmd {
	case "up", "down", "status", "redo", "reset":
		err = migrate.Run(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "не указан -version")
			os.Exit(1)
		}
		err = migrate.UpTo(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "неизвестная команда:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Миграция завершилась с ошибкой", zap.String("cmd", *cmd), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Миграция выполнена", zap.String("cmd", *cmd))
}
