package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

// compile-time check that *DB implements store.AccountStore
var _ store.AccountStore = (*DB)(nil)

// Get retrieves an account by its identifier.
// Returns apperror.ErrNotFound (wrapped) if no account exists with that id.
func (db *DB) Get(ctx context.Context, id string) (*model.Account, error) {
	var (
		a        model.Account
		reviews  []byte
		friends  []byte
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password, reviews, friends, created_at, updated_at
		 FROM accounts WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Email, &a.Password, &reviews, &friends, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account", id)
		}
		return nil, fmt.Errorf("sqlite: getting account %s: %w", id, err)
	}

	if err := decodeAccountBlobs(&a, reviews, friends); err != nil {
		return nil, fmt.Errorf("sqlite: decoding account %s: %w", a.ID, err)
	}
	return &a, nil
}

// Put inserts or fully replaces an account row.
//
// ON CONFLICT DO UPDATE keeps the original rowid while still being a
// whole-record overwrite: every column, including the JSON ledger and
// graph blobs, is rewritten from the caller's copy. Last write wins.
func (db *DB) Put(ctx context.Context, account *model.Account) error {
	reviews, friends, err := encodeAccountBlobs(account)
	if err != nil {
		return fmt.Errorf("sqlite: encoding account %s: %w", account.ID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password, reviews, friends, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		 	email      = excluded.email,
		 	password   = excluded.password,
		 	reviews    = excluded.reviews,
		 	friends    = excluded.friends,
		 	updated_at = excluded.updated_at`,
		account.ID,
		account.Email,
		account.Password,
		reviews,
		friends,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: putting account %s: %w", account.ID, err)
	}
	return nil
}

// List returns every account in creation order. Used by callers that scan
// for identifier existence; fine at this app's scale.
func (db *DB) List(ctx context.Context) ([]model.Account, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, email, password, reviews, friends, created_at, updated_at
		 FROM accounts ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing accounts: %w", err)
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
			return nil, fmt.Errorf("sqlite: scanning account row: %w", err)
		}
		if err := decodeAccountBlobs(&a, reviews, friends); err != nil {
			return nil, fmt.Errorf("sqlite: decoding account %s: %w", a.ID, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating accounts: %w", err)
	}
	return accounts, nil
}

func encodeAccountBlobs(a *model.Account) (reviews, friends []byte, err error) {
	reviews, err = json.Marshal(a.Reviews)
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling reviews: %w", err)
	}
	friends, err = json.Marshal(a.Friends)
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling friends: %w", err)
	}
	return reviews, friends, nil
}

func decodeAccountBlobs(a *model.Account, reviews, friends []byte) error {
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &a.Reviews); err != nil {
			return fmt.Errorf("unmarshalling reviews: %w", err)
		}
	}
	if len(friends) > 0 {
		if err := json.Unmarshal(friends, &a.Friends); err != nil {
			return fmt.Errorf("unmarshalling friends: %w", err)
		}
	}
	return nil
}
