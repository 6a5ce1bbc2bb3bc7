package core

import (
	"reflect"
	"testing"
)

func TestTypingSetAndClear(t *testing.T) {
	tr := NewTyping()

	tr.Set("c1", "alice", true)
	tr.Set("c2", "bob", true)

	if got := tr.Active(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Fatalf("unexpected active set: %v", got)
	}

	tr.Set("c1", "alice", false)
	if got := tr.Active(); !reflect.DeepEqual(got, []string{"bob"}) {
		t.Fatalf("unexpected active set after stop: %v", got)
	}

	tr.Clear("c2")
	tr.Clear("c2") // idempotent
	if got := tr.Active(); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestTypingDeduplicatesUsernames(t *testing.T) {
	tr := NewTyping()

	// Same username on two connections shows up once.
	tr.Set("c1", "alice", true)
	tr.Set("c2", "alice", true)

	if got := tr.Active(); !reflect.DeepEqual(got, []string{"alice"}) {
		t.Fatalf("unexpected active set: %v", got)
	}
}
