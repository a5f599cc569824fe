package service

import (
	"context"
	"errors"
	"testing"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/store/memory"
)

func newTestRestaurantService(t *testing.T) *RestaurantService {
	t.Helper()
	return NewRestaurantService(memory.New(), 48.8566, 2.3522, newTestLogger())
}

func TestCreateRestaurant_Success(t *testing.T) {
	svc := newTestRestaurantService(t)

	r, err := svc.Create(context.Background(), "Kebab Royal", 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if r.ID == "" {
		t.Error("expected a generated restaurant ID")
	}
	if r.Name != "Kebab Royal" {
		t.Errorf("Name = %q, want %q", r.Name, "Kebab Royal")
	}
}

func TestCreateRestaurant_Validation(t *testing.T) {
	svc := newTestRestaurantService(t)

	tests := []struct {
		name     string
		restName string
		lat, lng float64
	}{
		{"empty name", "", 48.0, 2.0},
		{"whitespace name", "   ", 48.0, 2.0},
		{"latitude too low", "Chez Momo", -91, 2.0},
		{"latitude too high", "Chez Momo", 91, 2.0},
		{"longitude too low", "Chez Momo", 48.0, -181},
		{"longitude too high", "Chez Momo", 48.0, 181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.restName, tt.lat, tt.lng)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

// Restaurants are a global collection: created once, visible to every
// session through List.
func TestListRestaurants_PlacementOrder(t *testing.T) {
	svc := newTestRestaurantService(t)

	first, err := svc.Create(context.Background(), "Kebab Royal", 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(context.Background(), "Chez Momo", 48.8606, 2.3376)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d restaurants, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Error("List() should preserve placement order")
	}
}

func TestMap_MarkersAndFallbackCenter(t *testing.T) {
	svc := newTestRestaurantService(t)

	r, err := svc.Create(context.Background(), "Kebab Express", 48.853, 2.3499)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	view, err := svc.Map(context.Background())
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	if view.Center != [2]float64{48.8566, 2.3522} {
		t.Errorf("Center = %v, want the configured fallback coordinate", view.Center)
	}
	if len(view.Markers) != 1 {
		t.Fatalf("Map() returned %d markers, want 1", len(view.Markers))
	}
	m := view.Markers[0]
	if m.ID != r.ID || m.Label != "Kebab Express" {
		t.Errorf("marker = %+v, want id %s and label Kebab Express", m, r.ID)
	}
	if m.Coordinate != [2]float64{48.853, 2.3499} {
		t.Errorf("marker coordinate = %v, want [48.853 2.3499]", m.Coordinate)
	}
}

func TestMap_EmptyCollection(t *testing.T) {
	svc := newTestRestaurantService(t)

	view, err := svc.Map(context.Background())
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(view.Markers) != 0 {
		t.Errorf("Map() returned %d markers for empty collection, want 0", len(view.Markers))
	}
}
