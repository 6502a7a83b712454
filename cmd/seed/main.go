package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/m04kA/TRV-PlanService/internal/config"
)

// Наполняет базу тестовыми специалистами, рабочими часами и черновиками планов
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedSpecialists(db, 20); err != nil {
		log.Fatalf("seed specialists: %v", err)
	}
	if err := seedPlans(db, 50); err != nil {
		log.Fatalf("seed plans: %v", err)
	}

	log.Println("seed complete")
}

func seedSpecialists(db *sql.DB, count int) error {
	log.Printf("seeding %d specialists", count)

	timezones := []string{
		"Europe/Lisbon",
		"Europe/Berlin",
		"Europe/Moscow",
		"America/New_York",
		"America/Sao_Paulo",
		"Asia/Tokyo",
		"Australia/Sydney",
		"UTC",
	}

	// Типичные рабочие окна, включая ночную смену
	windows := [][2]string{
		{"09:00", "17:00"},
		{"08:00", "12:00"},
		{"14:00", "20:00"},
		{"10:00", "18:00"},
		{"22:00", "06:00"},
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := gofakeit.Email()
		tz := timezones[gofakeit.Number(0, len(timezones)-1)]

		var specialistID int64
		err := tx.QueryRow(`
			INSERT INTO specialists (name, email, timezone, status, calendar_connected, created_at, updated_at)
			VALUES ($1, $2, $3, 'active', $4, NOW(), NOW())
			RETURNING id
		`, name, email, tz, gofakeit.Bool()).Scan(&specialistID)
		if err != nil {
			return err
		}

		// Одно или два рабочих окна на специалиста
		windowCount := gofakeit.Number(1, 2)
		for j := 0; j < windowCount; j++ {
			w := windows[gofakeit.Number(0, len(windows)-1)]
			_, err := tx.Exec(`
				INSERT INTO working_hours (specialist_id, start_time, end_time)
				VALUES ($1, $2, $3)
			`, specialistID, w[0], w[1])
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Println("specialists seeded")
	return nil
}

func seedPlans(db *sql.DB, count int) error {
	log.Printf("seeding %d draft plans", count)

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := fmt.Sprintf("+%d", gofakeit.Number(10000000000, 79999999999))

		_, err := tx.Exec(`
			INSERT INTO plans (traveler_name, traveler_email, traveler_phone,
				status, appointment_status, payment_status, created_at, updated_at)
			VALUES ($1, $2, $3, 'draft', 'draft', 'pending', NOW(), NOW())
		`, name, email, phone)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Println("plans seeded")
	return nil
}
