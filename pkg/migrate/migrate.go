package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const Dir = "migrations"

func init() {
	goose.SetBaseFS(embedMigrations)
}

// OpenDB оборачивает пул pgx в *sql.DB для goose.
func OpenDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// Run выполняет команду goose (up, down, status, redo, reset).
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db обязателен")
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("не удалось установить диалект goose: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, Dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// UpTo поднимает или откатывает схему до указанной версии.
func UpTo(ctx context.Context, db *sql.DB, target string) error {
	version, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректная версия %q: %w", target, err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("не удалось установить диалект goose: %w", err)
	}
	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("не удалось получить версию схемы: %w", err)
	}
	if version >= current {
		return goose.UpToContext(ctx, db, Dir, version)
	}
	return goose.DownToContext(ctx, db, Dir, version)
}

// AutoRun поднимает схему при старте, если это разрешено конфигом.
func AutoRun(ctx context.Context, pool *pgxpool.Pool, enabled bool, logger *zap.Logger) error {
	if !enabled {
		logger.Info("Автоматические миграции отключены")
		return nil
	}
	db := OpenDB(pool)
	defer db.Close()

	logger.Info("Применение миграций goose")
	if err := Run(ctx, db, "up"); err != nil {
		return fmt.Errorf("не удалось применить миграции: %w", err)
	}
	logger.Info("Миграции применены")
	return nil
}
