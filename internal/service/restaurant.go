package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

const maxRestaurantNameLength = 100

// RestaurantService owns the shared restaurant collection. Any
// authenticated session can place a restaurant from a map click, and the
// whole collection is visible to all sessions.
type RestaurantService struct {
	restaurants store.RestaurantStore
	defaultLat  float64
	defaultLng  float64
	logger      *slog.Logger
}

// NewRestaurantService creates a RestaurantService. The default
// coordinate is the map center handed to the widget when geolocation is
// unavailable.
func NewRestaurantService(restaurants store.RestaurantStore, defaultLat, defaultLng float64, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		defaultLat:  defaultLat,
		defaultLng:  defaultLng,
		logger:      logger,
	}
}

// Create places a new restaurant at the clicked coordinate.
func (s *RestaurantService) Create(ctx context.Context, name string, lat, lng float64) (*model.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "restaurant name is required")
	}
	if len(name) > maxRestaurantNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("restaurant name must be %d characters or less", maxRestaurantNameLength))
	}
	if lat < -90 || lat > 90 {
		return nil, apperror.ValidationFailed("lat", "latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, apperror.ValidationFailed("lng", "longitude must be between -180 and 180")
	}

	restaurant := &model.Restaurant{
		ID:        xid.New().String(),
		Name:      name,
		Lat:       lat,
		Lng:       lng,
		CreatedAt: time.Now(),
	}

	if err := s.restaurants.CreateRestaurant(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("service/restaurant: creating %q: %w", name, err)
	}

	s.logger.Info("restaurant created",
		slog.String("id", restaurant.ID),
		slog.String("name", restaurant.Name),
	)

	return restaurant, nil
}

// List returns every restaurant in placement order.
func (s *RestaurantService) List(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/restaurant: listing: %w", err)
	}
	return restaurants, nil
}

// MapView is what the map-rendering widget consumes: the marker list plus
// the center to fall back to when the client has no position of its own.
type MapView struct {
	Center  [2]float64     `json:"center"`
	Markers []model.Marker `json:"markers"`
}

// Map builds the widget feed from the current restaurant collection.
func (s *RestaurantService) Map(ctx context.Context) (*MapView, error) {
	restaurants, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/restaurant: building map view: %w", err)
	}

	markers := make([]model.Marker, 0, len(restaurants))
	for _, r := range restaurants {
		markers = append(markers, r.Marker())
	}

	return &MapView{
		Center:  [2]float64{s.defaultLat, s.defaultLng},
		Markers: markers,
	}, nil
}
