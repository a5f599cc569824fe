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

// Policy decides what a second review for the same restaurant does.
//
// The app's variants never agreed on this, so it is a configuration
// decision, not a bug to fix silently: PolicyReplace updates the existing
// review in place (position in the ledger preserved), PolicyAppend just
// appends a duplicate.
type Policy string

const (
	PolicyReplace Policy = "replace"
	PolicyAppend  Policy = "append"
)

// ReviewService owns the per-account review ledger.
type ReviewService struct {
	accounts store.AccountStore
	policy   Policy
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService with the given upsert policy.
func NewReviewService(accounts store.AccountStore, policy Policy, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		accounts: accounts,
		policy:   policy,
		logger:   logger,
	}
}

// Upsert records a review of restaurantID by the given account and
// returns the updated ledger snapshot.
//
// Rating 0 means "no rating given"; anything else must be 1..5. The
// restaurant id is not checked against the restaurant list — reviews have
// always been soft references.
//
// PERSISTENCE:
// The ledger is a nested collection of the account record, so the default
// write path ships the whole updated account through Put. When the
// backing offers the column-level fast path (the remote table does), only
// the reviews column travels.
func (s *ReviewService) Upsert(ctx context.Context, accountID, restaurantID, body string, rating int) ([]model.Review, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return nil, apperror.ValidationFailed("restaurantId", "restaurant id is required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.ValidationFailed("body", "review body is required")
	}
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, apperror.ValidationFailed("rating", "rating must be between 1 and 5")
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	review := model.Review{
		RestaurantID: restaurantID,
		Body:         body,
		Rating:       rating,
		UpdatedAt:    time.Now(),
	}

	replaced := false
	if s.policy == PolicyReplace {
		if i := account.ReviewFor(restaurantID); i >= 0 {
			account.Reviews[i] = review
			replaced = true
		}
	}
	if !replaced {
		account.Reviews = append(account.Reviews, review)
	}

	if err := s.persist(ctx, account); err != nil {
		return nil, fmt.Errorf("service/review: persisting ledger for %s: %w", accountID, err)
	}

	s.logger.Info("review upserted",
		slog.String("accountID", accountID),
		slog.String("restaurantID", restaurantID),
		slog.Bool("replaced", replaced),
	)

	return account.Reviews, nil
}

// List returns the account's reviews in insertion order.
func (s *ReviewService) List(ctx context.Context, accountID string) ([]model.Review, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Reviews, nil
}

// persist writes the updated ledger, preferring the column-level update
// when the backing supports it.
func (s *ReviewService) persist(ctx context.Context, account *model.Account) error {
	if updater, ok := s.accounts.(store.ReviewUpdater); ok {
		return updater.UpdateReviews(ctx, account.ID, account.Reviews)
	}
	account.UpdatedAt = time.Now()
	return s.accounts.Put(ctx, account)
}
