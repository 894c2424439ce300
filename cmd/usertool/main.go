// usertool is a maintenance CLI that operates directly on the persistence
// store: listing users, fixing display names and granting or revoking admin
// rights. It is not part of the runtime bot flow.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Chuk2022/VKBot-GDM/internal/config"
	"github.com/Chuk2022/VKBot-GDM/internal/logger"
	"github.com/Chuk2022/VKBot-GDM/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env файл не найден: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      logger.LevelWarn,
		OutputPath: "stdout",
		Format:     "text",
	}); err != nil {
		fmt.Printf("❌ Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}

	db, err := repository.NewPostgresDB(cfg.DB)
	if err != nil {
		fmt.Printf("❌ Ошибка подключения к базе: %v\n", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	readings := repository.NewReadingRepository(db)
	ctx := context.Background()

	args := os.Args[1:]
	switch {
	case len(args) == 0 || args[0] == "list":
		err = listUsers(ctx, users, readings)
	case args[0] == "rename" && len(args) == 3:
		err = withID(args[1], func(id int64) error {
			if err := users.Rename(ctx, id, args[2]); err != nil {
				return err
			}
			fmt.Printf("Имя пользователя %d изменено на %q\n", id, args[2])
			return nil
		})
	case args[0] == "admin" && len(args) == 2:
		err = withID(args[1], func(id int64) error {
			if err := users.SetAdmin(ctx, id, true); err != nil {
				return err
			}
			fmt.Printf("Пользователь %d теперь администратор\n", id)
			return nil
		})
	case args[0] == "unadmin" && len(args) == 2:
		err = withID(args[1], func(id int64) error {
			if err := users.SetAdmin(ctx, id, false); err != nil {
				return err
			}
			fmt.Printf("Пользователь %d теперь обычный пользователь\n", id)
			return nil
		})
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, users *repository.UserRepository, readings *repository.ReadingRepository) error {
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-15s %-30s %-8s %-8s\n", "Telegram ID", "Имя", "Админ", "Замеры")
	for _, user := range all {
		count, err := readings.CountByUser(ctx, user.TelegramID)
		if err != nil {
			return err
		}
		fmt.Printf("%-15d %-30s %-8v %-8d\n", user.TelegramID, user.Name, user.IsAdmin, count)
	}
	fmt.Printf("Всего пользователей: %d\n", len(all))
	return nil
}

func withID(raw string, fn func(int64) error) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram id %q: %w", raw, err)
	}
	return fn(id)
}

func usage() {
	fmt.Println(`Использование:
  usertool                    - показать всех пользователей
  usertool list               - показать всех пользователей
  usertool rename ID "Имя"    - исправить имя пользователя
  usertool admin ID           - сделать пользователя администратором
  usertool unadmin ID         - снять права администратора`)
}
