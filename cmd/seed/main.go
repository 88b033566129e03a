package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/OlexiiMelnik/app-users/config"
	"github.com/OlexiiMelnik/app-users/pkg/helpers"
)

// Seeds the role reference data and an initial admin account so delete
// and search are reachable on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var adminRoleID, userRoleID int64
	if err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ('ADMIN')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&adminRoleID); err != nil {
		log.Fatalf("failed to upsert ADMIN role: %v", err)
	}
	if err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ('USER')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&userRoleID); err != nil {
		log.Fatalf("failed to upsert USER role: %v", err)
	}
	fmt.Printf("roles ensured: ADMIN=%d USER=%d\n", adminRoleID, userRoleID)

	email := "admin@example.com"
	password := "admin-password"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	birthDate := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, birth_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, email, hash, "Admin", "Admin", birthDate).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", id, email, password)

	for _, roleID := range []int64{adminRoleID, userRoleID} {
		if _, err := db.Exec(`
			INSERT INTO user_roles (user_id, role_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, id, roleID); err != nil {
			log.Fatalf("failed to assign role: %v", err)
		}
	}
	fmt.Println("assigned roles to seeded admin (if not already)")
}
