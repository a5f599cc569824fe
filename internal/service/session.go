// Package service contains the business logic layer: the session manager,
// the review ledger, the friend graph and the shared restaurant list.
//
// Handlers parse HTTP and render snapshots; services enforce the rules;
// stores persist. Every service receives its store as an interface, so the
// sqlite, mysql and in-memory backings are interchangeable and tests call
// the services directly with plain Go values, no HTTP harness involved.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store"
)

// SessionService is the session manager: it authenticates or registers
// against the account store and issues the session token that becomes the
// client's working identity.
//
// There is no server-side session registry. The signed token IS the
// session, so logout is a client-side discard (the handler clears the
// cookie) and never fails — exactly the unconditional logout the app
// always had.
type SessionService struct {
	accounts      store.AccountStore
	tokens        *auth.TokenService
	sessionTTL    time.Duration
	persistentTTL time.Duration
	logger        *slog.Logger
}

// NewSessionService wires the session manager. sessionTTL is the normal
// login lifetime; persistentTTL is used when the caller sets the
// stay-logged-in flag.
func NewSessionService(
	accounts store.AccountStore,
	tokens *auth.TokenService,
	sessionTTL, persistentTTL time.Duration,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		accounts:      accounts,
		tokens:        tokens,
		sessionTTL:    sessionTTL,
		persistentTTL: persistentTTL,
		logger:        logger,
	}
}

// SessionResult bundles the authenticated account with its issued token
// so the handler can set the cookie and respond in one step.
type SessionResult struct {
	Account *model.Account
	Token   string
	TTL     time.Duration
}

// Register creates a new account and opens a session for it.
//
// Fails with a validation error if any field is blank, and with a
// conflict if the identifier is already taken. The duplicate check is the
// read-then-write sequence the app has always used: a concurrent
// registration race is additionally caught by the remote backing's
// unique-key mapping, where one exists.
func (s *SessionService) Register(ctx context.Context, id, email, password string, stayLoggedIn bool) (*SessionResult, error) {
	id = strings.TrimSpace(id)
	email = strings.TrimSpace(email)

	if id == "" {
		return nil, apperror.ValidationFailed("id", "identifier is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	// Existence check: a successful Get means the identifier is taken.
	_, err := s.accounts.Get(ctx, id)
	switch {
	case err == nil:
		return nil, apperror.Conflict("account", id)
	case errors.Is(err, apperror.ErrNotFound):
		// free — proceed
	default:
		return nil, fmt.Errorf("service/session: checking identifier %s: %w", id, err)
	}

	now := time.Now()
	account := &model.Account{
		ID:        id,
		Email:     email,
		Password:  password,
		Reviews:   []model.Review{},
		Friends:   []model.FriendRef{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accounts.Put(ctx, account); err != nil {
		return nil, fmt.Errorf("service/session: creating account %s: %w", id, err)
	}

	s.logger.Info("account registered", slog.String("accountID", id))

	return s.openSession(account, stayLoggedIn)
}

// Login authenticates an existing account and opens a session.
//
// The password comparison is plaintext equality — authentication
// security is an explicit non-goal of this app. The not-found and
// bad-credentials cases stay distinct errors because the UI has always
// shown different messages for them.
func (s *SessionService) Login(ctx context.Context, id, email, password string, stayLoggedIn bool) (*SessionResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "identifier is required")
	}

	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		// Not-found and store failures both propagate as-is.
		return nil, err
	}

	if account.Email != strings.TrimSpace(email) || account.Password != password {
		s.logger.Info("login rejected", slog.String("accountID", id))
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("login accepted", slog.String("accountID", id))

	return s.openSession(account, stayLoggedIn)
}

// GetAccount returns the account for an already-authenticated session id.
// Used by the profile endpoint after the middleware validates the token.
func (s *SessionService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "identifier is required")
	}
	return s.accounts.Get(ctx, id)
}

func (s *SessionService) openSession(account *model.Account, stayLoggedIn bool) (*SessionResult, error) {
	ttl := s.sessionTTL
	if stayLoggedIn {
		ttl = s.persistentTTL
	}

	token, err := s.tokens.Generate(account.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("service/session: issuing token for %s: %w", account.ID, err)
	}

	return &SessionResult{Account: account, Token: token, TTL: ttl}, nil
}
