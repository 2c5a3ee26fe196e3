// File: cmd/migrate/main.go
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

// A small CLI applying the schema under /migrations against DATABASE_URL
// via golang-migrate.
func main() {
	_ = godotenv.Load(".env")

	var (
		dir = flag.String("dir", "migrations", "path to the migration files directory")
		cmd = flag.String("cmd", "up", "up, down, or a target version number")
	)
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	m, err := migrate.New("file://"+*dir, dsn)
	if err != nil {
		log.Fatalf("migrate: failed to initialize: %v", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("migrate: source close error: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("migrate: database close error: %v", dbErr)
		}
	}()

	switch *cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("migrate: unsupported -cmd %q (use up or down)", *cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate: %s failed: %v", *cmd, err)
	}
	log.Printf("migrate: %s completed", *cmd)
}
