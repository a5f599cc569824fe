// Package memory is the in-process store double. It implements the same
// ports as the sqlite and mysql backings, so it can be injected anywhere
// they can — which is exactly what the service tests do.
//
// Records are copied on the way in and out. Without the copies, a caller
// mutating a returned account would silently mutate the "persisted" state
// and hide missing Put calls from tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

var (
	_ store.AccountStore    = (*Store)(nil)
	_ store.RestaurantStore = (*Store)(nil)
)

// Store holds accounts and restaurants in maps behind a mutex. The mutex
// is only there so a test harness may drive several sessions concurrently;
// the app itself serializes operations.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]model.Account
	restaurants []model.Restaurant
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]model.Account),
	}
}

func (s *Store) Get(_ context.Context, id string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, apperror.NotFound("account", id)
	}
	out := copyAccount(a)
	return &out, nil
}

func (s *Store) Put(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = copyAccount(*account)
	return nil
}

func (s *Store) List(_ context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, copyAccount(a))
	}
	// Maps iterate in random order; keep List deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateRestaurant(_ context.Context, r *model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.restaurants = append(s.restaurants, *r)
	return nil
}

// ListRestaurants returns restaurants in placement order.
func (s *Store) ListRestaurants(_ context.Context) ([]model.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Restaurant, len(s.restaurants))
	copy(out, s.restaurants)
	return out, nil
}

func copyAccount(a model.Account) model.Account {
	out := a
	out.Reviews = append([]model.Review(nil), a.Reviews...)
	out.Friends = append([]model.FriendRef(nil), a.Friends...)
	return out
}
