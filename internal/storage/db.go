package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

type DB struct {
	connection *sql.DB
	logger     *zap.Logger
}

func NewDB(dataSourceName string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}

	return &DB{connection: db, logger: logger}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		db.logger.Error("Error closing the database connection", zap.Error(err))
	}
}

// Ping is used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.connection.PingContext(ctx)
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
