// Package model defines the data structures used throughout the application.
package model

import "time"

// Account is a registered user's durable record: credentials plus the
// review ledger and friend graph the account owns.
//
// The ID is the user-chosen identifier typed at registration, not a
// generated key. Accounts are created at registration and never deleted;
// there is no deletion path anywhere in the app.
//
// WHY Password string WITH json:"-"?
// Credentials are stored and compared in plaintext — authentication
// security is an explicit non-goal of this app. The json:"-" tag keeps
// the password out of every API response while the storage layer still
// persists it through its own column/blob encoding.
type Account struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Password  string      `json:"-"`
	Reviews   []Review    `json:"reviews"`
	Friends   []FriendRef `json:"friends"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Review is one rated text review of a restaurant, owned by an account.
//
// Rating is 0 when the reviewer gave no rating, otherwise 1..5. The
// restaurant ID is a soft reference into the restaurant collection; it is
// not enforced with a constraint, matching the app's loose coupling
// between reviews and the shared restaurant list.
type Review struct {
	RestaurantID string    `json:"restaurantId"`
	Body         string    `json:"body"`
	Rating       int       `json:"rating,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FriendRef is one entry in an account's friend graph: the target
// account's identifier plus its email denormalized at add time. The copy
// is intentional — if the target later changes their email, existing
// refs keep the old value, exactly like the original friend lists.
//
// There is no back-link invariant: holding a FriendRef to someone does
// not mean they hold one back.
type FriendRef struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	AddedAt time.Time `json:"addedAt"`
}

// ReviewFor returns the index of this account's review for the given
// restaurant, or -1 if none exists. Used by the replace-on-match upsert.
func (a *Account) ReviewFor(restaurantID string) int {
	for i, r := range a.Reviews {
		if r.RestaurantID == restaurantID {
			return i
		}
	}
	return -1
}

// HasFriend reports whether the account's graph already holds a ref to id.
func (a *Account) HasFriend(id string) bool {
	for _, f := range a.Friends {
		if f.ID == id {
			return true
		}
	}
	return false
}
