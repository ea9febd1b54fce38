package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Migrations is the ordered schema history.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "Create users table",
		Up: `
			CREATE EXTENSION IF NOT EXISTS pgcrypto;
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				external_uid TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				picture TEXT,
				role TEXT NOT NULL DEFAULT 'user',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		Down: `DROP TABLE IF EXISTS users`,
	},
	{
		Version:     2,
		Description: "Create candidates table",
		Up: `
			CREATE TABLE IF NOT EXISTS candidates (
				id SERIAL PRIMARY KEY,
				initials TEXT NOT NULL,
				profile_image_url TEXT,
				full_name TEXT NOT NULL,
				title TEXT NOT NULL,
				location TEXT NOT NULL,
				skills TEXT[] NOT NULL,
				experience_years INTEGER NOT NULL,
				bio TEXT NOT NULL,
				education TEXT NOT NULL,
				availability TEXT NOT NULL,
				contact_email TEXT,
				contact_phone TEXT,
				certifications TEXT[],
				bill_rate INTEGER,
				pay_rate INTEGER,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		Down: `DROP TABLE IF EXISTS candidates`,
	},
	{
		Version:     3,
		Description: "Create interests table",
		Up: `
			CREATE TABLE IF NOT EXISTS interests (
				id SERIAL PRIMARY KEY,
				candidate_id INTEGER NOT NULL,
				company_name TEXT NOT NULL,
				contact_name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT,
				message TEXT,
				status TEXT NOT NULL DEFAULT 'new',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS interests_candidate_id_idx ON interests (candidate_id)`,
		Down: `DROP TABLE IF EXISTS interests`,
	},
	{
		Version:     4,
		Description: "Create analytics tables",
		Up: `
			CREATE TABLE IF NOT EXISTS candidate_views (
				id SERIAL PRIMARY KEY,
				candidate_id INTEGER NOT NULL,
				viewed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				user_agent TEXT,
				ip_address TEXT
			);
			CREATE TABLE IF NOT EXISTS search_activity (
				id SERIAL PRIMARY KEY,
				search_query TEXT NOT NULL,
				search_type TEXT NOT NULL,
				results_count INTEGER NOT NULL,
				searched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				user_agent TEXT,
				ip_address TEXT
			)`,
		Down: `DROP TABLE IF EXISTS search_activity; DROP TABLE IF EXISTS candidate_views`,
	},
}

type Migrator struct {
	db     *DB
	logger *zap.Logger
}

func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	_, err := m.db.connection.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return errors.Wrap(err, "failed to create migrations table")
}

func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.db.connection.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query migrations")
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan migration row")
		}
		applied[version] = appliedAt
	}
	return applied, rows.Err()
}

func (m *Migrator) ApplyMigration(ctx context.Context, migration Migration) error {
	return m.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.Up); err != nil {
			return errors.Wrapf(err, "failed to apply migration %d", migration.Version)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			migration.Version, migration.Description); err != nil {
			return errors.Wrapf(err, "failed to record migration %d", migration.Version)
		}
		return nil
	})
}

func (m *Migrator) RollbackMigration(ctx context.Context, migration Migration) error {
	return m.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.Down); err != nil {
			return errors.Wrapf(err, "failed to rollback migration %d", migration.Version)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, migration.Version); err != nil {
			return errors.Wrapf(err, "failed to remove migration record %d", migration.Version)
		}
		return nil
	})
}

// Up applies every pending migration in order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range Migrations {
		if _, ok := applied[migration.Version]; ok {
			m.logger.Debug("Migration already applied",
				zap.Int("version", migration.Version),
				zap.String("description", migration.Description),
			)
			continue
		}

		m.logger.Info("Applying migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description),
		)
		if err := m.ApplyMigration(ctx, migration); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Down rolls back the newest steps applied migrations and returns how many ran.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(Migrations) - 1; i >= 0 && count < steps; i-- {
		migration := Migrations[i]
		if _, ok := applied[migration.Version]; !ok {
			continue
		}
		m.logger.Info("Rolling back migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description),
		)
		if err := m.RollbackMigration(ctx, migration); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Status lists every known migration with its applied time, zero when pending.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(Migrations))
	for _, migration := range Migrations {
		out = append(out, MigrationStatus{Migration: migration, AppliedAt: applied[migration.Version]})
	}
	return out, nil
}

type MigrationStatus struct {
	Migration
	AppliedAt time.Time
}
