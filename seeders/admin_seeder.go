package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// SeedAdmin создаёт первого администратора. Повторный запуск ничего не меняет.
func SeedAdmin(ctx context.Context, users repositories.UserRepositoryInterface, seed config.SeedConfig) error {
	email := strings.TrimSpace(seed.AdminEmail)
	if email == "" {
		return errors.New("SEED_ADMIN_EMAIL не задан")
	}
	if seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD не задан")
	}

	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("  - Пользователь %s уже существует (роль %s). Пропускаем.", existing.Email, existing.Role)
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	hash, err := utils.HashPassword(seed.AdminPassword)
	if err != nil {
		return err
	}

	id, err := users.Create(ctx, &entities.User{
		Email:        email,
		Name:         seed.AdminName,
		Role:         constants.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}
	log.Printf("  - Администратор %s создан (id=%d)", email, id)
	return nil
}
