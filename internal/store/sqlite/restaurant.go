package sqlite

import (
	"context"
	"fmt"

	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

// compile-time check that *DB implements store.RestaurantStore
var _ store.RestaurantStore = (*DB)(nil)

// CreateRestaurant inserts a restaurant. The caller assigns the id; a duplicate id
// is a programming error surfaced as a plain failure, not a domain
// conflict — ids are generated, never user-chosen.
func (db *DB) CreateRestaurant(ctx context.Context, r *model.Restaurant) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO restaurants (id, name, lat, lng, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Lat, r.Lng, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting restaurant %s: %w", r.ID, err)
	}
	return nil
}

// ListRestaurants returns all restaurants in placement order — the marker feed for
// the map widget.
func (db *DB) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, lat, lng, created_at
		 FROM restaurants ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var r model.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Lat, &r.Lng, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning restaurant row: %w", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating restaurants: %w", err)
	}
	return restaurants, nil
}
