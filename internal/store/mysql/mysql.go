// Package mysql implements the store interfaces on a remote MySQL server —
// the networked-table backing.
//
// Unlike the sqlite backing this one crosses the network, so two concerns
// appear that the local path never has:
//
//   - every call is bounded by a timeout (a hung TCP connection must not
//     suspend the caller indefinitely);
//   - driver failures are classified: a duplicate-key violation becomes a
//     domain conflict, anything else becomes apperror.ErrUnavailable so the
//     handler can surface it as a gateway failure the user retries manually.
//
// The table layout matches the sqlite backing: one row per account with the
// review ledger and friend graph as embedded JSON columns. The one remote
// optimization is UpdateReviews, which rewrites only the reviews column
// instead of the whole record.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlErrDupEntry is MySQL error 1062 (ER_DUP_ENTRY).
const mysqlErrDupEntry = 1062

// Config holds the connection parameters for the remote table server.
type Config struct {
	User    string
	Pass    string
	Host    string
	Port    string
	Name    string
	Timeout time.Duration // per-call deadline; 0 means no deadline
}

// DB wraps a sql.DB pool plus the per-call timeout.
type DB struct {
	conn    *sql.DB
	timeout time.Duration
}

// New connects to MySQL, verifies the connection and creates the tables.
func New(cfg Config) (*DB, error) {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: opening pool: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("mysql: pinging server: %w", err)
	}

	db := &DB{conn: conn, timeout: cfg.Timeout}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("mysql: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	ctx, cancel := db.opCtx(context.Background())
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id         VARCHAR(191) PRIMARY KEY,
			email      VARCHAR(255) NOT NULL,
			password   VARCHAR(255) NOT NULL,
			reviews    JSON NOT NULL,
			friends    JSON NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS restaurants (
			id         VARCHAR(191) PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			lat        DOUBLE NOT NULL,
			lng        DOUBLE NOT NULL,
			created_at DATETIME NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating restaurants table: %w", err)
	}
	return nil
}

// opCtx derives the per-call context. Remote calls are the only operations
// in the app that may block on the network, so they all get a deadline.
func (db *DB) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.timeout)
}

// isDupEntry reports whether err is MySQL's duplicate-key violation.
func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}
