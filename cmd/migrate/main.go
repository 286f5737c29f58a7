package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationDir), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Migration failed to initialize: %v", err)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	switch args[0] {
	case "up":
		report(m.Up(), "Migrated up")
	case "down":
		report(m.Down(), "Migrated down")
	case "steps":
		if len(args) < 2 {
			log.Fatal("steps requires a count argument (negative rolls back)")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid step count: %v", err)
		}
		report(m.Steps(n), fmt.Sprintf("Applied %d step(s)", n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

func report(err error, success string) {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", err)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No change")
		return
	}
	fmt.Println(success)
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, steps <n>, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
