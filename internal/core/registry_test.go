package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegistryInsertionOrder(t *testing.T) {
	r := NewRegistry()

	for i := 0; i < 5; i++ {
		if _, err := r.Register(fmt.Sprintf("c%d", i), fmt.Sprintf("user%d", i)); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	users := r.Users()
	if len(users) != 5 {
		t.Fatalf("expected 5 users, got %d", len(users))
	}
	for i, u := range users {
		if u.ConnID != fmt.Sprintf("c%d", i) {
			t.Fatalf("order broken at %d: %+v", i, u)
		}
	}
}

func TestRegistryDuplicateConnection(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Register("c1", "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Register("c1", "alice again"); !errors.Is(err, ErrDuplicateConnection) {
		t.Fatalf("expected ErrDuplicateConnection, got %v", err)
	}
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", "alice")

	u, ok := r.Unregister("c1")
	if !ok || u.Username != "alice" {
		t.Fatalf("unexpected unregister result: %+v %v", u, ok)
	}
	if _, ok := r.Unregister("c1"); ok {
		t.Fatal("second unregister should report absence")
	}
	if _, ok := r.Lookup("c1"); ok {
		t.Fatal("lookup should miss after unregister")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistryOrderSurvivesRemoval(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", "alice")
	r.Register("c2", "bob")
	r.Register("c3", "carol")

	r.Unregister("c2")

	users := r.Users()
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "carol" {
		t.Fatalf("unexpected order after removal: %+v", users)
	}
}
