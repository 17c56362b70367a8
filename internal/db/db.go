// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/config"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	maxTxAttempts  = 3
	txRetryBackoff = 25 * time.Millisecond
)

// sqliteDSNParams are applied to every SQLite DSN. BEGIN IMMEDIATE takes the
// write lock up front, so booking transactions that check then insert are
// serialized against each other.
var sqliteDSNParams = []dsnParam{
	{key: "_fk", value: "1"},
	{key: "_txlock", value: "immediate"},
	{key: "_busy_timeout", value: "5000"},
	{key: "_journal_mode", value: "WAL"},
}

type dsnParam struct {
	key   string
	value string
}

type DB struct {
	*sql.DB
	Queries *dbgen.Queries
}

// New opens a SQLite database for the given data source name, ensures the
// locking and foreign key parameters are present in the DSN, applies embedded
// migrations, and returns a DB with generated queries bound to the connection.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := OpenSQLite(dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return Wrap(sqlDB), nil
}

// NewFromConfig creates a new DB instance from cfg by opening the configured
// SQLite database, creating its directory if needed, and applying migrations.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	return New(cfg.Database.Filename)
}

// OpenSQLite opens a SQLite database with the standard DSN parameters but
// leaves its schema alone. Migration tooling uses it.
func OpenSQLite(dataSourceName string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite3", ensureSQLiteDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return sqlDB, nil
}

// Wrap binds generated queries to an already opened connection pool without
// touching its schema.
func Wrap(sqlDB *sql.DB) *DB {
	return &DB{
		DB:      sqlDB,
		Queries: dbgen.New(sqlDB),
	}
}

// ensureSQLiteDSN appends any of sqliteDSNParams the caller did not set.
func ensureSQLiteDSN(dataSourceName string) string {
	for _, param := range sqliteDSNParams {
		if strings.Contains(dataSourceName, param.key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(dataSourceName, "?") {
			sep = "&"
		}
		dataSourceName += sep + param.key + "=" + param.value
	}
	return dataSourceName
}

// NewMigrator returns a migrate instance over the embedded migrations.
// Callers own the returned instance and must Close it.
func NewMigrator(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs", source,
		"sqlite3", driver,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// runMigrations applies the embedded SQL migrations. A "no change" result is
// not an error.
func runMigrations(sqlDB *sql.DB) error {
	m, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// WithTx creates a new DB instance with the given transaction
func (db *DB) WithTx(tx *sql.Tx) *DB {
	return &DB{
		DB:      db.DB,
		Queries: db.Queries.WithTx(tx),
	}
}

// BeginTx starts a transaction
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return tx, nil
}

// RunInTx runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise. When SQLite reports the database as busy or locked
// the whole transaction is retried; fn must therefore be safe to re-run.
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runInTxOnce(ctx, fn)
		if err == nil || !IsBusy(err) || attempt == maxTxAttempts {
			return err
		}

		log.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("Retrying busy transaction")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * txRetryBackoff):
		}
	}
	return err
}

func (db *DB) runInTxOnce(ctx context.Context, fn func(*DB) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txDB := db.WithTx(tx)
	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}
