package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

// compile-time checks: *DB is an AccountStore and offers the column-level
// review fast path.
var (
	_ store.AccountStore  = (*DB)(nil)
	_ store.ReviewUpdater = (*DB)(nil)
)

// Get does a point lookup by identifier.
func (db *DB) Get(ctx context.Context, id string) (*model.Account, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	var (
		a       model.Account
		reviews []byte
		friends []byte
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password, reviews, friends, created_at, updated_at
		 FROM accounts WHERE id = ? LIMIT 1`,
		id,
	).Scan(&a.ID, &a.Email, &a.Password, &reviews, &friends, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("account", id)
		}
		return nil, apperror.Unavailable("account lookup", err)
	}

	if err := json.Unmarshal(reviews, &a.Reviews); err != nil {
		return nil, fmt.Errorf("mysql: decoding reviews for %s: %w", a.ID, err)
	}
	if err := json.Unmarshal(friends, &a.Friends); err != nil {
		return nil, fmt.Errorf("mysql: decoding friends for %s: %w", a.ID, err)
	}
	return &a, nil
}

// Put inserts or fully replaces the account row.
//
// INSERT .. ON DUPLICATE KEY UPDATE gives the same whole-record overwrite
// semantics as the local backing. A duplicate-key failure can still
// surface from a racing plain insert elsewhere; it maps to a conflict so
// registration races report the taken identifier instead of silently
// overwriting.
func (db *DB) Put(ctx context.Context, account *model.Account) error {
	reviews, err := json.Marshal(account.Reviews)
	if err != nil {
		return fmt.Errorf("mysql: encoding reviews for %s: %w", account.ID, err)
	}
	friends, err := json.Marshal(account.Friends)
	if err != nil {
		return fmt.Errorf("mysql: encoding friends for %s: %w", account.ID, err)
	}

	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password, reviews, friends, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		 	email = VALUES(email), password = VALUES(password),
		 	reviews = VALUES(reviews), friends = VALUES(friends),
		 	updated_at = VALUES(updated_at)`,
		account.ID, account.Email, account.Password,
		reviews, friends, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isDupEntry(err) {
			return apperror.Conflict("account", account.ID)
		}
		return apperror.Unavailable("account write", err)
	}
	return nil
}

// List selects all accounts. Kept for interface parity; remote callers
// normally issue targeted Gets instead of scanning.
func (db *DB) List(ctx context.Context) ([]model.Account, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, email, password, reviews, friends, created_at, updated_at
		 FROM accounts ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, apperror.Unavailable("account scan", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var (
			a       model.Account
			reviews []byte
			friends []byte
		)
		if err := rows.Scan(&a.ID, &a.Email, &a.Password, &reviews, &friends, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, apperror.Unavailable("account scan", err)
		}
		if err := json.Unmarshal(reviews, &a.Reviews); err != nil {
			return nil, fmt.Errorf("mysql: decoding reviews for %s: %w", a.ID, err)
		}
		if err := json.Unmarshal(friends, &a.Friends); err != nil {
			return nil, fmt.Errorf("mysql: decoding friends for %s: %w", a.ID, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("account scan", err)
	}
	return accounts, nil
}

// UpdateReviews rewrites only the reviews column of one account — the
// column-level alternative to shipping the whole record over the wire.
func (db *DB) UpdateReviews(ctx context.Context, id string, reviews []model.Review) error {
	blob, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("mysql: encoding reviews for %s: %w", id, err)
	}

	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE accounts SET reviews = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		blob, id,
	)
	if err != nil {
		return apperror.Unavailable("review update", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// No row matched and nothing changed: either the account vanished
		// or the ledger was already identical. Distinguish with a lookup.
		if _, getErr := db.Get(ctx, id); getErr != nil {
			return getErr
		}
	}
	return nil
}
