package main

import (
	"errors"
	"log"
	"os"

	"projectTracker/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден")
	}

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("Не удалось загрузить конфиг: %v", err)
	}

	m, err := migrate.New("file://internal/migrations", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Не удалось создать мигратор: %v", err)
	}
	defer m.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("Неизвестная команда: %s (ожидается up или down)", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Ошибка миграции: %v", err)
	}

	log.Println("Миграции применены")
}
