package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/second-brain-api/config"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@secondbrain.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	// Default brain so the UI has somewhere to put saved items
	var brainID string
	err = db.QueryRow(`
		INSERT INTO brains (owner_id, name)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, userID, "My Brain").Scan(&brainID)
	if err != nil {
		log.Fatalf("failed to seed brain: %v", err)
	}
	fmt.Printf("seeded brain: id=%s name=%q owner=%s\n", brainID, "My Brain", userID)
}
