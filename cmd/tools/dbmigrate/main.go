// cmd/tools/dbmigrate/main.go
package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath  = flag.String("db", "", "Path to SQLite database")
		command = flag.String("command", "", "Command to run (up, down, version, force)")
		version = flag.String("version", "", "Target version for force")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		log.Error().Msg("-db and -command are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	absDB, err := filepath.Abs(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database path")
	}
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create database directory")
	}

	sqlDB, err := db.OpenSQLite(absDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer sqlDB.Close()

	m, err := db.NewMigrator(sqlDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrate instance")
	}
	defer m.Close()

	logger := log.With().Str("db", absDB).Str("command", *command).Logger()
	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Info().Msg("Successfully ran migrations up")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		logger.Info().Msg("Successfully ran migrations down")

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("Failed to get version")
		}
		logger.Info().Uint("version", v).Bool("dirty", dirty).Msg("Current version")

	case "force":
		target, err := strconv.Atoi(*version)
		if err != nil {
			logger.Fatal().Str("version", *version).Msg("force requires a numeric -version")
		}
		if err := m.Force(target); err != nil {
			logger.Fatal().Err(err).Msg("Failed to force version")
		}
		logger.Info().Int("version", target).Msg("Forced migration version")

	default:
		logger.Fatal().Msg("Unknown command")
	}
}
