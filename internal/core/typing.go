package core

import "sort"

// Typing is the transient set of users currently signaling that they
// are typing. Entries are keyed by connection so a disconnect can
// always clean up after itself.
// Not safe for concurrent use; the hub owns it.
type Typing struct {
	byConn map[string]string
}

// NewTyping constructs an empty tracker.
func NewTyping() *Typing {
	return &Typing{byConn: make(map[string]string)}
}

// Set adds or removes the connection's entry. Idempotent.
func (t *Typing) Set(connID, username string, isTyping bool) {
	if isTyping {
		t.byConn[connID] = username
	} else {
		delete(t.byConn, connID)
	}
}

// Clear removes the connection's entry on disconnect. Idempotent.
func (t *Typing) Clear(connID string) {
	delete(t.byConn, connID)
}

// Active returns the deduplicated, sorted usernames currently typing.
func (t *Typing) Active() []string {
	seen := make(map[string]struct{}, len(t.byConn))
	out := make([]string, 0, len(t.byConn))
	for _, username := range t.byConn {
		if _, dup := seen[username]; dup {
			continue
		}
		seen[username] = struct{}{}
		out = append(out, username)
	}
	sort.Strings(out)
	return out
}
