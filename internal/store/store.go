// Package store defines the storage ports the services depend on.
//
// The backing medium is an injected implementation detail: the sqlite
// subpackage persists to a local file, the mysql subpackage talks to a
// remote table server, and the memory subpackage is the in-process double
// used by tests. Services only ever see these interfaces, so the three
// backings are interchangeable at wiring time.
package store

import (
	"context"

	"github.com/antoinevw/kebapp/internal/model"
)

// AccountStore is a key-value view over accounts, keyed by the
// user-chosen identifier.
//
// Put is a whole-record upsert: the entire account, including its review
// ledger and friend graph, replaces whatever was stored before. There is
// no partial-field merge — two racing read-modify-write cycles resolve as
// last-write-wins. Callers serialize their own operations (one in flight
// at a time), which is the app's only mitigation.
type AccountStore interface {
	// Get returns the account or an error wrapping apperror.ErrNotFound.
	Get(ctx context.Context, id string) (*model.Account, error)
	// Put inserts or fully replaces the account record.
	Put(ctx context.Context, account *model.Account) error
	// List returns every account. Local backings use it for
	// identifier-existence scans; remote backings prefer targeted Gets.
	List(ctx context.Context) ([]model.Account, error)
}

// ReviewUpdater is an optional fast path a backing may offer: update only
// the reviews column of an account instead of rewriting the whole record.
// The remote table backing implements it; the review service upgrades to
// it via a type assertion and otherwise falls back to Put.
type ReviewUpdater interface {
	UpdateReviews(ctx context.Context, id string, reviews []model.Review) error
}

// RestaurantStore holds the shared restaurant collection. Create-only:
// nothing in the app updates or deletes a restaurant once placed.
// Method names carry the Restaurant suffix so one backing type can
// implement this alongside AccountStore.
type RestaurantStore interface {
	CreateRestaurant(ctx context.Context, r *model.Restaurant) error
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
}
