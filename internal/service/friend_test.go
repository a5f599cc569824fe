package service

import (
	"context"
	"errors"
	"testing"

	"github.com/antoinevw/kebapp/internal/apperror"
	"github.com/antoinevw/kebapp/internal/store/memory"
)

func newTestFriendService(t *testing.T) (*FriendService, *SessionService, *memory.Store) {
	t.Helper()
	st := memory.New()
	sessions := NewSessionService(st, newTestTokens(t), 0, 0, newTestLogger())
	friends := NewFriendService(st, newTestLogger())
	return friends, sessions, st
}

func TestAddFriend_Success(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")
	mustRegister(t, sessions, "leila", "l@x.com", "pw")

	graph, err := friends.Add(context.Background(), "paul", "leila")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if len(graph) != 1 {
		t.Fatalf("graph has %d refs, want 1", len(graph))
	}
	if graph[0].ID != "leila" {
		t.Errorf("ref ID = %q, want %q", graph[0].ID, "leila")
	}
	// The email is denormalized at add time.
	if graph[0].Email != "l@x.com" {
		t.Errorf("ref Email = %q, want %q", graph[0].Email, "l@x.com")
	}
}

// Adds are one-sided: the target's graph never changes.
func TestAddFriend_OneSided(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")
	mustRegister(t, sessions, "leila", "l@x.com", "pw")

	if _, err := friends.Add(context.Background(), "paul", "leila"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	paulGraph, err := friends.List(context.Background(), "paul")
	if err != nil {
		t.Fatalf("List(paul) error = %v", err)
	}
	if len(paulGraph) != 1 || paulGraph[0].ID != "leila" {
		t.Errorf("paul's graph = %+v, want one ref to leila", paulGraph)
	}

	leilaGraph, err := friends.List(context.Background(), "leila")
	if err != nil {
		t.Fatalf("List(leila) error = %v", err)
	}
	if len(leilaGraph) != 0 {
		t.Errorf("leila's graph has %d refs, want 0 (adds are one-sided)", len(leilaGraph))
	}
}

func TestAddFriend_SelfReference(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")

	_, err := friends.Add(context.Background(), "paul", "paul")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Add(self) error = %v, want ErrValidation", err)
	}
}

func TestAddFriend_AlreadyFriends(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")
	mustRegister(t, sessions, "leila", "l@x.com", "pw")

	if _, err := friends.Add(context.Background(), "paul", "leila"); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}

	_, err := friends.Add(context.Background(), "paul", "leila")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Add() error = %v, want ErrConflict", err)
	}

	// No duplicate ref crept in.
	graph, _ := friends.List(context.Background(), "paul")
	if len(graph) != 1 {
		t.Errorf("graph has %d refs after duplicate add, want 1", len(graph))
	}
}

// Adding a nonexistent identifier fails and leaves the graph unmutated.
func TestAddFriend_UnknownTarget(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")

	_, err := friends.Add(context.Background(), "paul", "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Add() error = %v, want ErrNotFound", err)
	}

	graph, err := friends.List(context.Background(), "paul")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(graph) != 0 {
		t.Errorf("graph has %d refs after failed add, want 0", len(graph))
	}
}

// The denormalized email is a point-in-time copy; the ref keeps the old
// value when the target's email later changes.
func TestAddFriend_EmailSnapshotDoesNotFollowChanges(t *testing.T) {
	friends, sessions, st := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")
	mustRegister(t, sessions, "leila", "l@x.com", "pw")

	if _, err := friends.Add(context.Background(), "paul", "leila"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Change leila's email directly in the store.
	leila, err := st.Get(context.Background(), "leila")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	leila.Email = "new@x.com"
	if err := st.Put(context.Background(), leila); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	graph, _ := friends.List(context.Background(), "paul")
	if graph[0].Email != "l@x.com" {
		t.Errorf("ref Email = %q, want snapshot %q", graph[0].Email, "l@x.com")
	}
}

func TestAddFriend_InsertionOrderPreserved(t *testing.T) {
	friends, sessions, _ := newTestFriendService(t)
	mustRegister(t, sessions, "paul", "p@x.com", "pw")
	mustRegister(t, sessions, "leila", "l@x.com", "pw")
	mustRegister(t, sessions, "momo", "m@x.com", "pw")

	if _, err := friends.Add(context.Background(), "paul", "momo"); err != nil {
		t.Fatalf("Add(momo) error = %v", err)
	}
	if _, err := friends.Add(context.Background(), "paul", "leila"); err != nil {
		t.Fatalf("Add(leila) error = %v", err)
	}

	graph, _ := friends.List(context.Background(), "paul")
	if len(graph) != 2 || graph[0].ID != "momo" || graph[1].ID != "leila" {
		t.Errorf("graph order = %+v, want momo then leila", graph)
	}
}
