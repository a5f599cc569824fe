package mysql

import (
	"context"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

var _ store.RestaurantStore = (*DB)(nil)

// CreateRestaurant inserts a restaurant row.
func (db *DB) CreateRestaurant(ctx context.Context, r *model.Restaurant) error {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO restaurants (id, name, lat, lng, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Lat, r.Lng, r.CreatedAt,
	)
	if err != nil {
		if isDupEntry(err) {
			return apperror.Conflict("restaurant", r.ID)
		}
		return apperror.Unavailable("restaurant write", err)
	}
	return nil
}

// ListRestaurants selects all restaurants in placement order.
func (db *DB) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, lat, lng, created_at
		 FROM restaurants ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, apperror.Unavailable("restaurant scan", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var r model.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Lat, &r.Lng, &r.CreatedAt); err != nil {
			return nil, apperror.Unavailable("restaurant scan", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("restaurant scan", err)
	}
	return restaurants, nil
}
