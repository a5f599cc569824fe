package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

// FriendService owns the per-account friend graph.
//
// Adds are ONE-SIDED: only the requester's graph gains a ref, the target
// account is never written. The variants of this app disagreed on
// mutuality; one-sided is the documented choice here because it matches
// the majority behavior and keeps every operation a single-account write.
type FriendService struct {
	accounts store.AccountStore
	logger   *slog.Logger
}

// NewFriendService creates a FriendService.
func NewFriendService(accounts store.AccountStore, logger *slog.Logger) *FriendService {
	return &FriendService{
		accounts: accounts,
		logger:   logger,
	}
}

// Add appends a ref to targetID into the requester's friend graph and
// returns the updated graph snapshot.
//
// Rejected cases, checked in order: self reference (validation), already
// friends (conflict), target account missing (not found). Each check runs
// before any write, so a failed add leaves the graph untouched.
//
// The target's email is copied into the ref at add time; later email
// changes on the target do not propagate.
func (s *FriendService) Add(ctx context.Context, requesterID, targetID string) ([]model.FriendRef, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, apperror.ValidationFailed("id", "friend identifier is required")
	}
	if targetID == requesterID {
		return nil, apperror.ValidationFailed("id", "cannot add yourself as a friend")
	}

	requester, err := s.accounts.Get(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if requester.HasFriend(targetID) {
		return nil, apperror.Conflict("friend", targetID)
	}

	target, err := s.accounts.Get(ctx, targetID)
	if err != nil {
		// A missing target propagates as the not-found error.
		return nil, err
	}

	requester.Friends = append(requester.Friends, model.FriendRef{
		ID:      target.ID,
		Email:   target.Email,
		AddedAt: time.Now(),
	})
	requester.UpdatedAt = time.Now()

	if err := s.accounts.Put(ctx, requester); err != nil {
		return nil, fmt.Errorf("service/friend: persisting graph for %s: %w", requesterID, err)
	}

	s.logger.Info("friend added",
		slog.String("accountID", requesterID),
		slog.String("friendID", targetID),
	)

	return requester.Friends, nil
}

// List returns the account's friend refs in insertion order.
func (s *FriendService) List(ctx context.Context, accountID string) ([]model.FriendRef, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Friends, nil
}
