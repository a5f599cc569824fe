package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
)

func TestGet_NotFound(t *testing.T) {
	st := New()

	_, err := st.Get(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	account := &model.Account{
		ID:       "paul",
		Email:    "p@x.com",
		Password: "pw",
		Reviews:  []model.Review{{RestaurantID: "1", Body: "Top!", Rating: 4}},
	}
	if err := st.Put(ctx, account); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := st.Get(ctx, "paul")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Email != "p@x.com" || len(got.Reviews) != 1 {
		t.Errorf("Get() = %+v, want the stored record", got)
	}
}

// Mutating a returned record must not leak into the store — records are
// copied on the way in and out.
func TestGet_ReturnsIndependentCopy(t *testing.T) {
	st := New()
	ctx := context.Background()

	if err := st.Put(ctx, &model.Account{
		ID:      "paul",
		Email:   "p@x.com",
		Reviews: []model.Review{{RestaurantID: "1", Body: "Top!"}},
	}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, _ := st.Get(ctx, "paul")
	got.Email = "hacked@x.com"
	got.Reviews[0].Body = "changed"

	fresh, _ := st.Get(ctx, "paul")
	if fresh.Email != "p@x.com" {
		t.Errorf("store email = %q, caller mutation leaked in", fresh.Email)
	}
	if fresh.Reviews[0].Body != "Top!" {
		t.Errorf("store review body = %q, caller mutation leaked in", fresh.Reviews[0].Body)
	}
}

func TestList_Deterministic(t *testing.T) {
	st := New()
	ctx := context.Background()

	for _, id := range []string{"momo", "leila", "paul"} {
		if err := st.Put(ctx, &model.Account{ID: id}); err != nil {
			t.Fatalf("Put(%s) error = %v", id, err)
		}
	}

	accounts, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("List() returned %d accounts, want 3", len(accounts))
	}
	// Sorted by id so repeated calls agree.
	if accounts[0].ID != "leila" || accounts[1].ID != "momo" || accounts[2].ID != "paul" {
		t.Errorf("List() order = %s, %s, %s; want leila, momo, paul",
			accounts[0].ID, accounts[1].ID, accounts[2].ID)
	}
}

func TestRestaurants_PlacementOrder(t *testing.T) {
	st := New()
	ctx := context.Background()

	now := time.Now()
	for i, name := range []string{"Kebab Royal", "Chez Momo"} {
		err := st.CreateRestaurant(ctx, &model.Restaurant{
			ID:        name,
			Name:      name,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("CreateRestaurant(%s) error = %v", name, err)
		}
	}

	restaurants, err := st.ListRestaurants(ctx)
	if err != nil {
		t.Fatalf("ListRestaurants() error = %v", err)
	}
	if len(restaurants) != 2 || restaurants[0].Name != "Kebab Royal" {
		t.Errorf("ListRestaurants() = %+v, want placement order", restaurants)
	}
}
