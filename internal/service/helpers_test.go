package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/model"
	"github.com/antoinevw/kebapp/internal/store/memory"
)

// Shared test wiring. The services are exercised against the real
// in-memory backing — it implements the same ports as sqlite and mysql,
// so these tests double as a check that the ports are sufficient.

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func newTestSessionService(t *testing.T) (*SessionService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := NewSessionService(st, newTestTokens(t), 24*time.Hour, 30*24*time.Hour, newTestLogger())
	return svc, st
}

// mustRegister registers an account or fails the test.
func mustRegister(t *testing.T, svc *SessionService, id, email, password string) *model.Account {
	t.Helper()
	result, err := svc.Register(context.Background(), id, email, password, false)
	if err != nil {
		t.Fatalf("Register(%s) error = %v", id, err)
	}
	return result.Account
}

// failingAccountStore simulates a backing whose every call fails —
// the remote store with the network down.
type failingAccountStore struct {
	err error
}

func (f *failingAccountStore) Get(context.Context, string) (*model.Account, error) {
	return nil, f.err
}

func (f *failingAccountStore) Put(context.Context, *model.Account) error {
	return f.err
}

func (f *failingAccountStore) List(context.Context) ([]model.Account, error) {
	return nil, f.err
}

var errStoreDown = errors.New("store down")
